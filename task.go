package pageflow

import (
	"context"
	"errors"
)

// Cmd is a unit of deferred work. It runs off the UI goroutine and returns
// the messages it produced.
type Cmd[M any] func(ctx context.Context) ([]M, error)

// Task is a batch of commands returned from Update, Handle and OnLoad. The
// zero Task does nothing.
type Task[M any] struct {
	cmds []Cmd[M]
}

// None returns an empty task.
func None[M any]() Task[M] {
	return Task[M]{}
}

// Perform wraps a single command.
func Perform[M any](cmd Cmd[M]) Task[M] {
	if cmd == nil {
		return Task[M]{}
	}
	return Task[M]{cmds: []Cmd[M]{cmd}}
}

// Done returns a task that immediately yields msgs.
func Done[M any](msgs ...M) Task[M] {
	if len(msgs) == 0 {
		return Task[M]{}
	}
	out := append([]M(nil), msgs...)
	return Perform(func(context.Context) ([]M, error) {
		return out, nil
	})
}

// Batch concatenates tasks. Empty tasks are dropped.
func Batch[M any](tasks ...Task[M]) Task[M] {
	n := 0
	for _, t := range tasks {
		n += len(t.cmds)
	}
	if n == 0 {
		return Task[M]{}
	}
	cmds := make([]Cmd[M], 0, n)
	for _, t := range tasks {
		cmds = append(cmds, t.cmds...)
	}
	return Task[M]{cmds: cmds}
}

// IsNone reports whether the task has no commands.
func (t Task[M]) IsNone() bool { return len(t.cmds) == 0 }

// Len returns the number of commands in the task.
func (t Task[M]) Len() int { return len(t.cmds) }

// Cmds returns the task's commands.
func (t Task[M]) Cmds() []Cmd[M] { return t.cmds }

// RunSync runs every command in order on the calling goroutine. Errors from
// individual commands are joined; messages from successful commands are
// still returned.
func (t Task[M]) RunSync(ctx context.Context) ([]M, error) {
	var (
		out  []M
		errs []error
	)
	for _, cmd := range t.cmds {
		msgs, err := cmd(ctx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, msgs...)
	}
	return out, errors.Join(errs...)
}
