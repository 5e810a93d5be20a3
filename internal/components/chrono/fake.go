package chrono

import (
	"context"
	"sync"
	"time"
)

// FakeImpl is an API whose clock only moves when Sleep is called.
type FakeImpl struct {
	mutex  sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func NewFakeImpl(start time.Time) *FakeImpl {
	return &FakeImpl{now: start}
}

func (f *FakeImpl) Now() time.Time {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.now
}

func (f *FakeImpl) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.now = f.now.Add(d)
	f.sleeps = append(f.sleeps, d)
	return nil
}

// Sleeps returns every duration passed to Sleep, in order.
func (f *FakeImpl) Sleeps() []time.Duration {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return append([]time.Duration(nil), f.sleeps...)
}
