package types

import (
	"sync"
)

// FIFO with unlimited capacity
// not thread safe
type queue[T any] struct {
	data []T
}

func (q *queue[T]) len() int {
	return len(q.data)
}

func (q *queue[T]) push(v T) {
	q.data = append(q.data, v)
}

// panics if empty
func (q *queue[T]) pop() T {
	var zero T
	v := q.data[0]
	q.data[0] = zero // drop reference for the GC
	q.data = q.data[1:]
	return v
}

// 1 ctrl M send N recv
// after Close, Send fails but queued values are still handed out
type ControlledQueue[T any] struct {
	data          queue[T]
	mu            sync.Mutex
	requestRecvCh chan struct{}
	closed        bool
}

func NewControlledQueue[T any]() *ControlledQueue[T] {
	return &ControlledQueue[T]{
		requestRecvCh: make(chan struct{}, 1),
	}
}

// stops accepting values
// safe to call more than once
func (cq *ControlledQueue[T]) Close() {
	cq.mu.Lock()
	if !cq.closed {
		cq.closed = true
		close(cq.requestRecvCh)
	}
	cq.mu.Unlock()
}

// return true on Send
// return false if closed and not Send
func (cq *ControlledQueue[T]) Send(v T) bool {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	if cq.closed {
		return false
	}
	cq.data.push(v)
	cq.wake()
	return true
}

// must hold mu
func (cq *ControlledQueue[T]) wake() {
	if cq.closed {
		return
	}
	select {
	case cq.requestRecvCh <- struct{}{}:
	default:
	}
}

// blocks on empty to wait to receive
// returns false once closed and drained
func (cq *ControlledQueue[T]) Recv() (T, bool) {
	_, v, ok := cq.AttemptRecv(true)
	return v, ok
}

// return (false, zero, true) on empty
// return (true, v, true) on recv
// return (true, zero, false) on closed and drained
// can opt out of blocking on empty
func (cq *ControlledQueue[T]) AttemptRecv(blockOnEmpty bool) (canRecv bool, v T, ok bool) {
	for {
		cq.mu.Lock()
		if cq.data.len() > 0 {
			v = cq.data.pop()
			if cq.data.len() > 0 {
				// pass the wakeup on to the next receiver
				cq.wake()
			}
			cq.mu.Unlock()
			return true, v, true
		}
		if cq.closed {
			cq.mu.Unlock()
			return true, v, false
		}
		cq.mu.Unlock()
		if !blockOnEmpty {
			return false, v, true
		}
		<-cq.requestRecvCh
	}
}

func (cq *ControlledQueue[T]) Len() int {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	return cq.data.len()
}

func (cq *ControlledQueue[T]) Closed() bool {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	return cq.closed
}
