package batch

import (
	"context"
	"testing"
)

func TestSemaphore_Nil(t *testing.T) {
	var sem *Semaphore

	if !sem.Acquire(context.Background()) {
		t.Error("nil semaphore Acquire should return true")
	}
	sem.Release()

	if sem.Capacity() != 0 {
		t.Errorf("nil semaphore capacity should be 0, got %d", sem.Capacity())
	}
}

func TestSemaphore_NilCancelled(t *testing.T) {
	var sem *Semaphore
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if sem.Acquire(ctx) {
		t.Error("nil semaphore Acquire should fail once ctx is cancelled")
	}
}

func TestSemaphore_ContextCancellation(t *testing.T) {
	sem := NewSemaphore(1)
	sem.Acquire(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if sem.Acquire(ctx) {
		t.Error("Acquire should return false when context is cancelled")
		sem.Release()
	}
	sem.Release()
}

func TestNewSemaphore_ZeroOrNegative(t *testing.T) {
	if NewSemaphore(0) != nil {
		t.Error("NewSemaphore(0) should return nil")
	}
	if NewSemaphore(-1) != nil {
		t.Error("NewSemaphore(-1) should return nil")
	}
	if got := NewSemaphore(4).Capacity(); got != 4 {
		t.Errorf("Capacity() = %d, want 4", got)
	}
}

func TestSemaphore_InUse(t *testing.T) {
	sem := NewSemaphore(2)
	ctx := context.Background()
	sem.Acquire(ctx)
	sem.Acquire(ctx)
	if got := sem.InUse(); got != 2 {
		t.Errorf("InUse() = %d, want 2", got)
	}
	sem.Release()
	if got := sem.InUse(); got != 1 {
		t.Errorf("InUse() after Release = %d, want 1", got)
	}
	var unlimited *Semaphore
	if unlimited.InUse() != 0 {
		t.Error("nil semaphore InUse should be 0")
	}
}
