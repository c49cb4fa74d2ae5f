package ratelimit

import (
	"sync"
	"time"
)

// Limiter paces successive page fetches
type Limiter interface {
	// Wait blocks until the next request may proceed
	Wait()
}

// Interval spreads requests evenly by holding each caller until a fixed gap
// has passed since the previous one. Spreading, rather than allowing bursts,
// matches how a browsing session actually touches the site.
type Interval struct {
	gap  time.Duration
	mu   sync.Mutex
	next time.Time // earliest time the next request may start
}

// PerMinute builds an Interval limiter from a requests-per-minute budget
func PerMinute(requestsPerMinute int) *Interval {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 1
	}
	return NewInterval(time.Minute / time.Duration(requestsPerMinute))
}

// NewInterval creates a limiter spacing requests at least gap apart
func NewInterval(gap time.Duration) *Interval {
	return &Interval{gap: gap}
}

// Wait blocks until the gap since the previous request has elapsed. The
// first call proceeds immediately.
func (i *Interval) Wait() {
	i.mu.Lock()
	now := time.Now()

	if i.next.After(now) {
		sleep := i.next.Sub(now)
		i.next = i.next.Add(i.gap)
		i.mu.Unlock()
		time.Sleep(sleep)
		return
	}

	i.next = now.Add(i.gap)
	i.mu.Unlock()
}

// Reset forgets the pacing state so the next request proceeds immediately
func (i *Interval) Reset() {
	i.mu.Lock()
	i.next = time.Time{}
	i.mu.Unlock()
}

// Unlimited is a no-op limiter for tests and callers that manage their own
// pacing
type Unlimited struct{}

func (Unlimited) Wait() {}
