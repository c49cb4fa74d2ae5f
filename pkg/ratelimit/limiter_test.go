package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPerMinuteGap(t *testing.T) {
	assert.Equal(t, time.Second, PerMinute(60).gap)
	assert.Equal(t, 2*time.Second, PerMinute(30).gap)

	// Nonsense budgets clamp to one request per minute
	assert.Equal(t, time.Minute, PerMinute(0).gap)
	assert.Equal(t, time.Minute, PerMinute(-5).gap)
}

func TestIntervalFirstCallImmediate(t *testing.T) {
	limiter := NewInterval(time.Hour)

	start := time.Now()
	limiter.Wait()
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestIntervalSpacesCalls(t *testing.T) {
	limiter := NewInterval(20 * time.Millisecond)

	start := time.Now()
	limiter.Wait()
	limiter.Wait()
	limiter.Wait()

	// Two gaps between three calls
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestIntervalReset(t *testing.T) {
	limiter := NewInterval(time.Hour)
	limiter.Wait()

	limiter.Reset()

	start := time.Now()
	limiter.Wait()
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestUnlimited(t *testing.T) {
	var l Limiter = Unlimited{}

	start := time.Now()
	for i := 0; i < 100; i++ {
		l.Wait()
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}
