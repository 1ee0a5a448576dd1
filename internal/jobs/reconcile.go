// Package jobs runs scheduled background work. The only job is the nightly
// ledger reconciliation: it re-derives every balance from the transaction
// log and reports users whose stored balance drifted.
package jobs

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/scoinhq/scoin-backend/internal/repos/ledger"
)

type Scheduler struct {
	cron   *cron.Cron
	ledger ledger.Ledger
}

func NewScheduler(ledgerRepo ledger.Ledger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		ledger: ledgerRepo,
	}
}

// Start registers the reconciliation job on the given cron schedule and
// starts the scheduler.
func (s *Scheduler) Start(ctx context.Context, schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.Reconcile(ctx); err != nil {
			log.WithError(err).Error("ledger reconciliation failed")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule reconciliation: %w", err)
	}

	s.cron.Start()
	log.WithField("schedule", schedule).Info("reconciliation job scheduled")

	return nil
}

// Reconcile checks the invariant sum(ledger) == balance for every user.
// Read-only: drift is reported, never patched automatically.
func (s *Scheduler) Reconcile(ctx context.Context) error {
	drifts, err := s.ledger.FindDrift(ctx)
	if err != nil {
		return fmt.Errorf("find drift: %w", err)
	}

	for _, d := range drifts {
		log.WithFields(log.Fields{
			"user_id":    d.UserID,
			"balance":    d.Balance,
			"ledger_sum": d.LedgerSum,
		}).Error("balance does not match ledger")
	}

	if len(drifts) == 0 {
		log.Debug("ledger reconciliation clean")
	}

	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
