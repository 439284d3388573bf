// Package pool runs tasks on a fixed set of worker goroutines.
//
// Workers share one FIFO and each reports its own index to the tasks it runs,
// which is what the renderer's debug tint visualizes. Every accepted task runs
// exactly once, including tasks still queued when Close is called.
package pool

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/joshvictor1024/parallel-mandelbrot/pkg/logging"
	"github.com/joshvictor1024/parallel-mandelbrot/pkg/types"
)

var (
	ErrClosed         = errors.New("pool: closed")
	ErrInvalidWorkers = errors.New("pool: worker count must be at least 1")
	ErrNilTask        = errors.New("pool: nil task")
)

// Task is the unit of work. worker is the index of the goroutine running it,
// in [0, Workers()).
type Task func(worker int)

// Job tracks one submitted task.
type Job struct {
	task Task
	done chan struct{}
	err  error
}

// Done is closed once the task has returned or panicked.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Err reports a recovered panic. Only valid after Done is closed.
func (j *Job) Err() error {
	return j.err
}

// Pool is a fixed-size goroutine pool. Safe for concurrent use.
type Pool struct {
	workers int
	queue   *types.ControlledQueue[*Job]
	wg      sync.WaitGroup
	running atomic.Bool
	panics  atomic.Int64
}

// DefaultWorkers is GOMAXPROCS.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// New starts workers goroutines.
func New(workers int) (*Pool, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidWorkers, workers)
	}
	p := &Pool{
		workers: workers,
		queue:   types.NewControlledQueue[*Job](),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	logging.Logger().Debug("pool started", "workers", workers)
	return p, nil
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		j, ok := p.queue.Recv()
		if !ok {
			return
		}
		p.exec(id, j)
	}
}

func (p *Pool) exec(id int, j *Job) {
	defer close(j.done)
	defer func() {
		if r := recover(); r != nil {
			p.panics.Add(1)
			j.err = fmt.Errorf("pool: task panicked on worker %d: %v", id, r)
			logging.Logger().Warn("task panicked", "worker", id, "panic", r)
		}
	}()
	j.task(id)
}

// Run queues t and returns immediately.
func (p *Pool) Run(t Task) (*Job, error) {
	if t == nil {
		return nil, ErrNilTask
	}
	j := &Job{task: t, done: make(chan struct{})}
	if !p.running.Load() || !p.queue.Send(j) {
		return nil, ErrClosed
	}
	return j, nil
}

// Close stops accepting tasks, lets the workers drain the queue and waits
// for them to exit. Safe to call more than once.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	p.queue.Close()
	p.wg.Wait()
	logging.Logger().Debug("pool stopped", "workers", p.workers, "panics", p.panics.Load())
}

func (p *Pool) Workers() int {
	return p.workers
}

func (p *Pool) IsRunning() bool {
	return p.running.Load()
}

// Queued is the number of tasks waiting for a worker. Approximate.
func (p *Pool) Queued() int {
	return p.queue.Len()
}

// Panics counts tasks that panicked since the pool started.
func (p *Pool) Panics() int64 {
	return p.panics.Load()
}
