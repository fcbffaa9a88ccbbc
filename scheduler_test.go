package pageflow

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSchedulerDeliversMessages(t *testing.T) {
	s := NewScheduler[int](context.Background(), 0, quietLogger())
	defer s.Close()

	s.Submit(Batch(Done(1), Done(2, 3)))
	s.Wait()
	msgs := s.Drain()
	sort.Ints(msgs)
	if len(msgs) != 3 || msgs[0] != 1 || msgs[2] != 3 {
		t.Errorf("msgs = %v", msgs)
	}
	if s.Pending() != 0 {
		t.Errorf("pending = %d", s.Pending())
	}
	if len(s.Drain()) != 0 {
		t.Error("second drain should be empty")
	}
}

func TestSchedulerFailureDoesNotCancelOthers(t *testing.T) {
	s := NewScheduler[int](context.Background(), 0, quietLogger())
	defer s.Close()

	s.Submit(Batch(
		Perform(func(context.Context) ([]int, error) { return nil, errors.New("boom") }),
		Perform(func(ctx context.Context) ([]int, error) {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return []int{5}, nil
		}),
	))
	s.Wait()
	if s.Failed() != 1 {
		t.Errorf("failed = %d, want 1", s.Failed())
	}
	msgs := s.Drain()
	if len(msgs) != 1 || msgs[0] != 5 {
		t.Errorf("msgs = %v, want [5]", msgs)
	}
}

func TestSchedulerLimitBacklogs(t *testing.T) {
	s := NewScheduler[int](context.Background(), 1, quietLogger())
	defer s.Close()

	release := make(chan struct{})
	var started sync.WaitGroup
	started.Add(1)
	s.Submit(Perform(func(context.Context) ([]int, error) {
		started.Done()
		<-release
		return []int{1}, nil
	}))
	started.Wait()
	s.Submit(Done(2))
	if s.Pending() != 2 {
		t.Fatalf("pending = %d, want 2", s.Pending())
	}

	close(release)
	s.Wait()
	first := s.Drain()
	if len(first) != 1 || first[0] != 1 {
		t.Fatalf("first drain = %v", first)
	}
	s.Wait()
	second := s.Drain()
	if len(second) != 1 || second[0] != 2 {
		t.Errorf("second drain = %v, want backlogged message", second)
	}
}

func TestSchedulerCloseCancels(t *testing.T) {
	s := NewScheduler[int](context.Background(), 0, quietLogger())
	started := make(chan struct{})
	s.Submit(Perform(func(ctx context.Context) ([]int, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}))
	<-started
	if err := s.Close(); err != nil {
		t.Errorf("close = %v", err)
	}
	if s.Pending() != 0 {
		t.Errorf("pending = %d", s.Pending())
	}
}
