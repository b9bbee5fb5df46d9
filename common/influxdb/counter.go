package influxdb

import (
	"sync/atomic"
)

// Counter is a tally shared between goroutines, reported as one field of
// a run metric.
type Counter struct {
	count int64
}

func NewCounter() *Counter {
	return &Counter{}
}

// Add returns the new total.
func (counter *Counter) Add(nbr int) int {
	return int(atomic.AddInt64(&counter.count, int64(nbr)))
}

func (counter *Counter) Get() int {
	return int(atomic.LoadInt64(&counter.count))
}

// Reset returns the total before it went back to zero.
func (counter *Counter) Reset() int {
	return int(atomic.SwapInt64(&counter.count, 0))
}
