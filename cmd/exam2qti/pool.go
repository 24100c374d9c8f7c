package main

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// Worker count bounds.
const (
	minWorkers = 1
	maxWorkers = 8 // each report writer may hold a browser (~200MB)
)

// writerPool manages report writers for parallel conversions.
// Each writer has its own browser, so PDF printing runs in parallel.
// Writers are created lazily on first acquire to avoid startup delay.
type writerPool struct {
	size      int
	newWriter func() (*reportWriter, error)
	writers   []*reportWriter
	sem       chan *reportWriter
	mu        sync.Mutex
	created   int
	closed    bool
}

// newWriterPool creates a pool with capacity for n writers built by newWriter.
func newWriterPool(n int, newWriter func() (*reportWriter, error)) *writerPool {
	if n < minWorkers {
		n = minWorkers
	}

	return &writerPool{
		size:      n,
		newWriter: newWriter,
		writers:   make([]*reportWriter, 0, n),
		sem:       make(chan *reportWriter, n),
	}
}

// Acquire gets a writer from the pool, creating one if needed.
// Blocks if all writers are in use.
func (p *writerPool) Acquire() (*reportWriter, error) {
	select {
	case w := <-p.sem:
		return w, nil
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		w, err := p.newWriter()
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}

		p.mu.Lock()
		p.writers = append(p.writers, w)
		p.mu.Unlock()

		return w, nil
	}
	p.mu.Unlock()

	return <-p.sem, nil
}

// Release returns a writer to the pool.
func (p *writerPool) Release(w *reportWriter) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		p.sem <- w
	}
}

// Close releases every browser started by the pool's writers.
func (p *writerPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	writers := p.writers
	p.mu.Unlock()

	var errs []error
	for _, w := range writers {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *writerPool) Size() int {
	return p.size
}

// resolvePoolSize determines the number of parallel workers.
// Priority: explicit value > GOMAXPROCS-based calculation.
func resolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0) / 2

	if n < minWorkers {
		return minWorkers
	}
	if n > maxWorkers {
		return maxWorkers
	}
	return n
}

// validateWorkers checks that the worker count is within valid bounds.
// Zero selects the automatic size.
func validateWorkers(n int) error {
	if n < 0 || n > maxWorkers {
		return fmt.Errorf("%w: --workers must be between 0 and %d, got %d", ErrUsage, maxWorkers, n)
	}
	return nil
}
