package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/scoinhq/scoin-backend/internal/api"
	"github.com/scoinhq/scoin-backend/internal/config"
	"github.com/scoinhq/scoin-backend/internal/infra/logging"
	"github.com/scoinhq/scoin-backend/internal/infra/pgutils"
	"github.com/scoinhq/scoin-backend/internal/jobs"
	"github.com/scoinhq/scoin-backend/internal/notify"
	pgitems "github.com/scoinhq/scoin-backend/internal/repos/items/postgres"
	pgledger "github.com/scoinhq/scoin-backend/internal/repos/ledger/postgres"
	pgsymbols "github.com/scoinhq/scoin-backend/internal/repos/symbols/postgres"
	pgusers "github.com/scoinhq/scoin-backend/internal/repos/users/postgres"
	"github.com/scoinhq/scoin-backend/internal/services/auth"
	"github.com/scoinhq/scoin-backend/internal/services/engine"
	"github.com/scoinhq/scoin-backend/pkg/shutdownqueue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.Setup(cfg.AppEnv, cfg.AppLogLevel)

	queue := shutdownqueue.New()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := queue.Drain(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Infra ---
	db, err := pgutils.OpenDB(ctx, cfg.DSN())
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	queue.Add("postgres", func(context.Context) error {
		return db.Close()
	})

	// --- Services ---
	usersRepo := pgusers.New(db)

	eng := engine.New(db,
		engine.WithBetLimits(cfg.MinBet, cfg.MaxBet),
	)

	authSvc := auth.New(usersRepo, cfg.JWTSecret, cfg.TokenTTL)

	var notifier notify.Notifier = notify.Nop{}

	if cfg.TelegramBotToken != "" && cfg.OpsChatID != 0 {
		notifier, err = notify.NewTelegram(cfg.TelegramBotToken, cfg.OpsChatID)
		if err != nil {
			return fmt.Errorf("init telegram notifier: %w", err)
		}

		log.Info("telegram notifications enabled")
	}

	var limiter *api.RateLimiter

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})

		err = rdb.Ping(ctx).Err()
		if err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}

		queue.Add("redis", func(context.Context) error {
			return rdb.Close()
		})

		limiter = api.NewRateLimiter(rdb, cfg.SpinPerMinute)

		log.Info("spin rate limiting enabled")
	}

	// --- Jobs ---
	scheduler := jobs.NewScheduler(pgledger.New(db))

	err = scheduler.Start(ctx, cfg.ReconcileSchedule)
	if err != nil {
		return fmt.Errorf("start reconcile job: %w", err)
	}

	queue.Add("scheduler", func(context.Context) error {
		scheduler.Stop()
		return nil
	})

	// --- HTTP server ---
	h := api.NewHandler(
		eng,
		authSvc,
		usersRepo,
		pgitems.New(db),
		pgsymbols.New(db),
		notifier,
		cfg.UploadsDir,
	)

	srv := api.NewServer(cfg.Port, api.NewRouter(h, limiter))

	queue.Add("http server", func(c context.Context) error {
		log.Info("shutting down server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	log.WithField("port", cfg.Port).Info("API started")

	select {
	case <-ctx.Done():
		// graceful path; the deferred queue drain will run
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}
