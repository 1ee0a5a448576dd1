// Package shutdownqueue collects cleanup tasks during startup and drains
// them in LIFO order on shutdown, so resources close in the reverse order
// they were opened.
package shutdownqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Task is a cleanup function. It should honor ctx and return an error if
// it cannot finish before ctx is done.
type Task func(ctx context.Context) error

// Queue holds registered tasks. The zero value is usable.
type Queue struct {
	mu     sync.Mutex
	tasks  []namedTask
	closed bool
}

type namedTask struct {
	name string
	run  Task
}

func New() *Queue {
	return &Queue{tasks: make([]namedTask, 0, 8)}
}

// Add registers a task under a name used in drain logs. Nil tasks and
// tasks added after Drain has started are ignored.
func (q *Queue) Add(name string, t Task) {
	if t == nil {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.tasks = append(q.tasks, namedTask{name: name, run: t})
}

// Drain runs all registered tasks in reverse registration order. It is
// idempotent. Task panics are recovered and reported as errors. If ctx
// is done mid-drain, remaining tasks are skipped and the context error
// is included in the joined result.
func (q *Queue) Drain(ctx context.Context) error {
	q.mu.Lock()

	if q.closed {
		q.mu.Unlock()

		return nil
	}

	q.closed = true
	tasks := q.tasks
	q.tasks = nil

	q.mu.Unlock()

	var errs []error

	for i := len(tasks) - 1; i >= 0; i-- {
		select {
		case <-ctx.Done():
			errs = append(errs, fmt.Errorf("drain canceled: %w", ctx.Err()))

			return errors.Join(errs...)
		default:
		}

		err := runSafe(ctx, tasks[i])
		if err != nil {
			log.WithError(err).WithField("task", tasks[i].name).Error("shutdown task failed")
			errs = append(errs, fmt.Errorf("%s: %w", tasks[i].name, err))
		}
	}

	return errors.Join(errs...)
}

func runSafe(ctx context.Context, t namedTask) (err error) {
	defer func() {
		r := recover()
		if r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	return t.run(ctx)
}
