// Package scene renders the Mandelbrot set into an RGBA frame buffer on a
// worker pool.
//
// A Scene owns one buffer of width*height*4 bytes, row-major RGBA with alpha
// fixed at 255. Render lends the buffer to the pool: it is cut into disjoint
// bands of rows, one task per band, and handed back when the last band
// finishes. While the buffer is lent, Buffer and Render report
// ErrRenderInProgress instead of racing the workers.
package scene

import (
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/joshvictor1024/parallel-mandelbrot/pkg/logging"
	"github.com/joshvictor1024/parallel-mandelbrot/pkg/pool"
	"github.com/joshvictor1024/parallel-mandelbrot/pkg/sink"
)

// Pool schedules tasks on workers. Run must return without running t
// itself; t is then executed exactly once by some worker.
type Pool interface {
	Run(t pool.Task) (*pool.Job, error)
	Workers() int
}

type Scene struct {
	width, height int
	concurrency   int
	pool          Pool
	owned         *pool.Pool // built by NewWithWorkers, closed by Close

	mu  sync.Mutex
	buf []byte // nil while lent to a render
}

// New creates a scene drawing on p. Concurrency is p.Workers().
func New(width, height int, p Pool) (*Scene, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %dx%d", ErrConstruction, width, height)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: nil worker pool", ErrConstruction)
	}
	if p.Workers() < 1 {
		return nil, fmt.Errorf("%w: worker pool has %d workers", ErrConstruction, p.Workers())
	}

	buf := make([]byte, width*height*BytesPerPixel)
	for i := 3; i < len(buf); i += BytesPerPixel {
		buf[i] = 255
	}
	logging.Logger().Debug("scene created", "width", width, "height", height, "workers", p.Workers())
	return &Scene{
		width:       width,
		height:      height,
		concurrency: p.Workers(),
		pool:        p,
		buf:         buf,
	}, nil
}

// NewWithWorkers creates a scene with its own pool of threads workers.
func NewWithWorkers(width, height, threads int) (*Scene, error) {
	p, err := pool.New(threads)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
	}
	s, err := New(width, height, p)
	if err != nil {
		p.Close()
		return nil, err
	}
	s.owned = p
	return s, nil
}

// Close stops the pool built by NewWithWorkers. Pools passed to New are
// left to their owner.
func (s *Scene) Close() {
	if s.owned != nil {
		s.owned.Close()
	}
}

func (s *Scene) Width() int       { return s.width }
func (s *Scene) Height() int      { return s.height }
func (s *Scene) Concurrency() int { return s.concurrency }

// Rendering reports whether the buffer is currently lent to a render.
func (s *Scene) Rendering() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf == nil
}

// Buffer returns the frame buffer without copying. The slice is only valid
// until the next Render; callers must not write to it.
func (s *Scene) Buffer() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buf == nil {
		return nil, ErrRenderInProgress
	}
	return s.buf[:len(s.buf):len(s.buf)], nil
}

// Image wraps the frame buffer as an *image.RGBA sharing its memory.
func (s *Scene) Image() (*image.RGBA, error) {
	buf, err := s.Buffer()
	if err != nil {
		return nil, err
	}
	return sink.RGBA(buf, s.width, s.height)
}

func (s *Scene) take() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buf == nil {
		return nil, ErrRenderInProgress
	}
	buf := s.buf
	s.buf = nil
	return buf, nil
}

func (s *Scene) restore(buf []byte) {
	s.mu.Lock()
	s.buf = buf
	s.mu.Unlock()
}

func (s *Scene) bandCount() int {
	return s.concurrency * bandsPerWorker
}

// Render starts drawing p into the frame buffer and returns at once.
// The returned Completion fires when every pixel has been written.
//
// If a band cannot be submitted, no band writes anything, the buffer goes
// back to the scene once the already submitted tasks have drained, and the
// error wraps ErrSpawn. A band that panics is recovered; the Completion
// still fires, with an error wrapping ErrRender.
func (s *Scene) Render(p Params) (*Completion, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	strategy, err := p.Mode.Strategy(p.MaxIterations)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	buf, err := s.take()
	if err != nil {
		return nil, err
	}

	c, err := s.start(buf, newFrame(s.width, s.height, p, strategy))
	if err != nil {
		return nil, err
	}
	logging.Logger().Debug("render dispatched",
		"scale", p.Scale, "dx", p.DX, "dy", p.DY,
		"max_iterations", p.MaxIterations,
		"mode", p.Mode.String(),
		"tint", p.DebugTint)
	return c, nil
}

// start hands buf, which the caller has taken from the scene, to the pool
// one band per task.
func (s *Scene) start(buf []byte, f *frame) (*Completion, error) {
	bands := splitBands(buf, s.width, s.height, s.bandCount())
	d := &dispatch{
		scene:      s,
		buf:        buf,
		completion: newCompletion(),
		gate:       make(chan struct{}),
	}
	d.remaining.Store(int64(len(bands)))

	for n, b := range bands {
		if _, err := s.pool.Run(d.task(f, b)); err != nil {
			err = fmt.Errorf("%w: band %d of %d: %w", ErrSpawn, n, len(bands), err)
			d.abort(err, len(bands)-n)
			return nil, err
		}
	}
	close(d.gate)
	logging.Logger().Debug("bands submitted", "bands", len(bands), "workers", s.concurrency)
	return d.completion, nil
}

// dispatch is the bookkeeping of one render.
type dispatch struct {
	scene      *Scene
	buf        []byte
	completion *Completion

	// closed once every band is submitted; bands wait on it so that a
	// failed submission leaves the buffer untouched
	gate      chan struct{}
	aborted   atomic.Bool
	remaining atomic.Int64

	mu  sync.Mutex
	err error
}

func (d *dispatch) task(f *frame, b band) pool.Task {
	return func(worker int) {
		defer d.release(1)
		<-d.gate
		if d.aborted.Load() {
			return
		}
		defer func() {
			if r := recover(); r != nil {
				d.fail(fmt.Errorf("%w: band at pixel %d on worker %d: %v", ErrRender, b.first, worker, r))
			}
		}()
		f.drawBand(b, worker)
	}
}

// abort cancels the bands before any of them runs. unsubmitted counts the
// bands that never reached the pool.
func (d *dispatch) abort(err error, unsubmitted int) {
	d.fail(err)
	d.aborted.Store(true)
	close(d.gate)
	d.release(int64(unsubmitted))
}

func (d *dispatch) fail(err error) {
	d.mu.Lock()
	if d.err == nil {
		d.err = err
	}
	d.mu.Unlock()
	logging.Logger().Warn("render failed", "error", err)
}

// release marks n bands as finished. The last one returns the buffer and
// fires the completion.
func (d *dispatch) release(n int64) {
	if d.remaining.Add(-n) != 0 {
		return
	}
	d.scene.restore(d.buf)
	d.mu.Lock()
	err := d.err
	d.mu.Unlock()
	d.completion.fire(err)
	logging.Logger().Debug("render finished", "elapsed", d.completion.Elapsed(), "error", err)
}
