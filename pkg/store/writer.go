package store

import (
	"context"
	"errors"
	"log"
	"sync"
)

// ErrWriterClosed is returned by Flush after Close.
var ErrWriterClosed = errors.New("store: writer closed")

type writeOp struct {
	key    string
	value  []byte
	remove bool
	done   chan struct{} // flush marker when non-nil
}

// Writer applies writes to a Store on a single goroutine in the order they
// were enqueued. Callers never wait on I/O; failures are logged.
type Writer struct {
	s Store

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []writeOp
	closed bool

	stopped chan struct{}
}

// NewWriter starts the worker goroutine. Close must be called to stop it.
func NewWriter(s Store) *Writer {
	w := &Writer{s: s, stopped: make(chan struct{})}
	w.cond = sync.NewCond(&w.mu)
	go w.run()
	return w
}

// Store returns the underlying store for direct reads.
func (w *Writer) Store() Store {
	return w.s
}

// Set enqueues a write of value under key. value must not be modified by the
// caller afterwards.
func (w *Writer) Set(key string, value []byte) {
	w.enqueue(writeOp{key: key, value: value})
}

// Remove enqueues deletion of key.
func (w *Writer) Remove(key string) {
	w.enqueue(writeOp{key: key, remove: true})
}

func (w *Writer) enqueue(op writeOp) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		log.Printf("store: write to %q after close dropped", op.key)
		return false
	}
	w.queue = append(w.queue, op)
	w.cond.Signal()
	return true
}

// Flush waits until every write enqueued before the call has been applied.
func (w *Writer) Flush(ctx context.Context) error {
	done := make(chan struct{})
	if !w.enqueue(writeOp{done: done}) {
		return ErrWriterClosed
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close drains the queue and stops the worker.
func (w *Writer) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.stopped
		return nil
	}
	w.closed = true
	w.cond.Signal()
	w.mu.Unlock()
	<-w.stopped

	if c, ok := w.s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func (w *Writer) run() {
	defer close(w.stopped)
	for {
		w.mu.Lock()
		for len(w.queue) == 0 && !w.closed {
			w.cond.Wait()
		}
		if len(w.queue) == 0 && w.closed {
			w.mu.Unlock()
			return
		}
		batch := w.queue
		w.queue = nil
		w.mu.Unlock()

		for _, op := range batch {
			w.apply(op)
		}
	}
}

func (w *Writer) apply(op writeOp) {
	if op.done != nil {
		close(op.done)
		return
	}
	var err error
	if op.remove {
		err = w.s.Remove(op.key)
	} else {
		err = w.s.Set(op.key, op.value)
	}
	if err != nil {
		log.Printf("store: persist %q: %v", op.key, err)
	}
}
