package pageflow

import (
	"context"
	"log/slog"
	"sync"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

// Scheduler runs task commands on background goroutines and queues their
// messages for the UI loop to drain. A failing command is logged; it does
// not cancel the others.
type Scheduler[M any] struct {
	ctx    context.Context
	cancel context.CancelFunc
	group  errgroup.Group

	mu      sync.Mutex
	inbox   []M
	backlog []Cmd[M]

	pending *atomic.Int64
	failed  *atomic.Int64
	logger  *slog.Logger
}

// NewScheduler creates a scheduler running at most limit commands at once.
// A limit of zero or less means no limit.
func NewScheduler[M any](ctx context.Context, limit int, logger *slog.Logger) *Scheduler[M] {
	if logger == nil {
		logger = Logger()
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &Scheduler[M]{
		ctx:     ctx,
		cancel:  cancel,
		pending: atomic.NewInt64(0),
		failed:  atomic.NewInt64(0),
		logger:  logger,
	}
	if limit > 0 {
		s.group.SetLimit(limit)
	}
	return s
}

// Submit starts every command of t. Commands that do not fit under the
// limit wait in a backlog retried by Drain.
func (s *Scheduler[M]) Submit(t Task[M]) {
	for _, cmd := range t.Cmds() {
		s.pending.Inc()
		if !s.tryGo(cmd) {
			s.mu.Lock()
			s.backlog = append(s.backlog, cmd)
			s.mu.Unlock()
		}
	}
}

func (s *Scheduler[M]) tryGo(cmd Cmd[M]) bool {
	return s.group.TryGo(func() error {
		defer s.pending.Dec()
		msgs, err := cmd(s.ctx)
		if err != nil {
			s.failed.Inc()
			s.logger.Error("task failed", slog.Any("error", err))
			return nil
		}
		if len(msgs) == 0 {
			return nil
		}
		s.mu.Lock()
		s.inbox = append(s.inbox, msgs...)
		s.mu.Unlock()
		return nil
	})
}

// Drain returns the messages produced since the last call and starts
// backlogged commands that now fit.
func (s *Scheduler[M]) Drain() []M {
	s.mu.Lock()
	msgs := s.inbox
	s.inbox = nil
	backlog := s.backlog
	s.backlog = nil
	s.mu.Unlock()

	for i, cmd := range backlog {
		if !s.tryGo(cmd) {
			s.mu.Lock()
			s.backlog = append(s.backlog, backlog[i:]...)
			s.mu.Unlock()
			break
		}
	}
	return msgs
}

// Pending returns the number of commands submitted but not finished.
func (s *Scheduler[M]) Pending() int64 { return s.pending.Load() }

// Failed returns the number of commands that returned an error.
func (s *Scheduler[M]) Failed() int64 { return s.failed.Load() }

// Wait blocks until every started command has returned. Backlogged
// commands are not started.
func (s *Scheduler[M]) Wait() {
	_ = s.group.Wait()
}

// Close cancels the context passed to commands and waits for them.
func (s *Scheduler[M]) Close() error {
	s.cancel()
	s.mu.Lock()
	s.pending.Sub(int64(len(s.backlog)))
	s.backlog = nil
	s.mu.Unlock()
	return s.group.Wait()
}
