package batch

import "context"

// Semaphore bounds how many cases are simulated at once. A nil *Semaphore
// is valid and admits any number of cases.
type Semaphore struct {
	slots chan struct{}
}

// NewSemaphore returns a semaphore admitting n cases, or nil when n <= 0.
func NewSemaphore(n int) *Semaphore {
	if n <= 0 {
		return nil
	}
	return &Semaphore{slots: make(chan struct{}, n)}
}

// Acquire takes a slot, blocking while all are in use. It reports false,
// without taking a slot, once ctx is done.
func (s *Semaphore) Acquire(ctx context.Context) bool {
	if err := ctx.Err(); err != nil {
		return false
	}
	if s == nil {
		return true
	}
	select {
	case s.slots <- struct{}{}:
		return true
	case <-ctx.Done():
		return false
	}
}

// Release returns a slot taken by Acquire.
func (s *Semaphore) Release() {
	if s != nil {
		<-s.slots
	}
}

// Capacity is the number of slots, 0 meaning unlimited.
func (s *Semaphore) Capacity() int {
	if s == nil {
		return 0
	}
	return cap(s.slots)
}

// InUse is the number of slots currently taken.
func (s *Semaphore) InUse() int {
	if s == nil {
		return 0
	}
	return len(s.slots)
}
