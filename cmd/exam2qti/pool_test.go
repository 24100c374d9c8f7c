package main

// Notes:
// - writerPool: writers are zero reportWriters, which own no browser, so
//   Close succeeds without Chrome.
// - resolvePoolSize: the automatic size depends on GOMAXPROCS; we only check
//   its bounds.

import (
	"errors"
	"sync/atomic"
	"testing"
)

// ---------------------------------------------------------------------------
// TestWriterPool - Lazy creation, reuse and close
// ---------------------------------------------------------------------------

func TestWriterPool_LazyCreation(t *testing.T) {
	t.Parallel()

	var created atomic.Int32
	pool := newWriterPool(2, func() (*reportWriter, error) {
		created.Add(1)
		return &reportWriter{}, nil
	})
	defer pool.Close()

	if created.Load() != 0 {
		t.Fatal("writers should not be created before Acquire")
	}

	w1, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	pool.Release(w1)

	w2, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if w1 != w2 {
		t.Error("released writer should be reused")
	}
	if created.Load() != 1 {
		t.Errorf("created %d writers, want 1", created.Load())
	}
}

func TestWriterPool_CreationError(t *testing.T) {
	t.Parallel()

	errFactory := errors.New("no assets")
	calls := 0
	pool := newWriterPool(1, func() (*reportWriter, error) {
		calls++
		if calls == 1 {
			return nil, errFactory
		}
		return &reportWriter{}, nil
	})
	defer pool.Close()

	if _, err := pool.Acquire(); !errors.Is(err, errFactory) {
		t.Fatalf("Acquire() error = %v, want %v", err, errFactory)
	}
	if _, err := pool.Acquire(); err != nil {
		t.Errorf("failed creation should free its slot, got %v", err)
	}
}

func TestWriterPool_Size(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n, want int
	}{
		{3, 3},
		{0, 1},
		{-2, 1},
	}
	for _, tt := range tests {
		pool := newWriterPool(tt.n, func() (*reportWriter, error) { return &reportWriter{}, nil })
		if got := pool.Size(); got != tt.want {
			t.Errorf("newWriterPool(%d).Size() = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestWriterPool_Close(t *testing.T) {
	t.Parallel()

	pool := newWriterPool(1, func() (*reportWriter, error) { return &reportWriter{}, nil })
	w, err := pool.Acquire()
	if err != nil {
		t.Fatal(err)
	}

	if err := pool.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	// Release after close is a no-op
	pool.Release(w)
}

// ---------------------------------------------------------------------------
// TestResolvePoolSize / TestValidateWorkers - Worker count
// ---------------------------------------------------------------------------

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	if got := resolvePoolSize(3); got != 3 {
		t.Errorf("resolvePoolSize(3) = %d, want 3", got)
	}
	if got := resolvePoolSize(0); got < minWorkers || got > maxWorkers {
		t.Errorf("resolvePoolSize(0) = %d, want within [%d, %d]", got, minWorkers, maxWorkers)
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n       int
		wantErr bool
	}{
		{0, false},
		{1, false},
		{maxWorkers, false},
		{-1, true},
		{maxWorkers + 1, true},
	}
	for _, tt := range tests {
		err := validateWorkers(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateWorkers(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrUsage) {
			t.Errorf("validateWorkers(%d) error = %v, want ErrUsage", tt.n, err)
		}
	}
}
