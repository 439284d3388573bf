package scene

import (
	"context"
	"time"
)

// Completion is the one-shot signal of a render. It fires exactly once,
// after every band has finished and the buffer is back in the Scene.
type Completion struct {
	done    chan struct{}
	err     error
	start   time.Time
	elapsed time.Duration
}

func newCompletion() *Completion {
	return &Completion{done: make(chan struct{}), start: time.Now()}
}

// must be called once
func (c *Completion) fire(err error) {
	c.err = err
	c.elapsed = time.Since(c.start)
	close(c.done)
}

// Done is closed when the render has finished.
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the render finishes or ctx is done. It returns the
// render's error, or ctx's error if ctx ended first; the render keeps
// running in that case.
func (c *Completion) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err is the render's result. Nil before Done is closed.
func (c *Completion) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}

// Elapsed is the wall time from dispatch to completion, or so far.
func (c *Completion) Elapsed() time.Duration {
	select {
	case <-c.done:
		return c.elapsed
	default:
		return time.Since(c.start)
	}
}
