// Package mailbox provides an unbounded multi-producer, single-consumer FIFO.
//
// Send never blocks, so a consumer may safely send to its own mailbox from
// inside its receive loop.
package mailbox

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Recv once the mailbox is closed and drained.
var ErrClosed = errors.New("mailbox: closed")

// Mailbox is an unbounded queue of T values.
type Mailbox[T any] struct {
	mu     sync.Mutex
	queue  []T
	closed bool
	ready  chan struct{}
}

// New returns an empty, open mailbox.
func New[T any]() *Mailbox[T] {
	return &Mailbox[T]{ready: make(chan struct{}, 1)}
}

// Send enqueues v. It reports false, dropping v, when the mailbox is closed.
func (m *Mailbox[T]) Send(v T) bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	m.queue = append(m.queue, v)
	m.mu.Unlock()
	m.wake()
	return true
}

// Recv dequeues the oldest value, waiting until one is available. Values
// sent before Close are still delivered; after that Recv returns ErrClosed.
func (m *Mailbox[T]) Recv(ctx context.Context) (T, error) {
	var zero T
	for {
		m.mu.Lock()
		if len(m.queue) > 0 {
			v := m.queue[0]
			m.queue[0] = zero
			m.queue = m.queue[1:]
			m.mu.Unlock()
			return v, nil
		}
		closed := m.closed
		m.mu.Unlock()
		if closed {
			return zero, ErrClosed
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-m.ready:
		}
	}
}

// Wait blocks until a value is queued without dequeuing it. It returns
// ErrClosed once the mailbox is closed and drained. A consumer that waits on
// one goroutine and dequeues with TryRecv on another never loses a value
// when the waiting side is abandoned.
func (m *Mailbox[T]) Wait(ctx context.Context) error {
	for {
		m.mu.Lock()
		queued := len(m.queue) > 0
		closed := m.closed
		m.mu.Unlock()
		switch {
		case queued:
			return nil
		case closed:
			return ErrClosed
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.ready:
		}
	}
}

// TryRecv dequeues the oldest value without waiting.
func (m *Mailbox[T]) TryRecv() (T, bool) {
	var zero T
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return zero, false
	}
	v := m.queue[0]
	m.queue[0] = zero
	m.queue = m.queue[1:]
	return v, true
}

// Close stops the mailbox from accepting values. Queued values remain
// receivable. Closing twice is harmless.
func (m *Mailbox[T]) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.wake()
}

// Len returns the number of queued values.
func (m *Mailbox[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

func (m *Mailbox[T]) wake() {
	select {
	case m.ready <- struct{}{}:
	default:
	}
}
