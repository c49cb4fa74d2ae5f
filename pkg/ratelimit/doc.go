// Package ratelimit paces requests against the gallery site.
//
// Interval spaces successive page fetches evenly from a requests-per-minute
// budget, with Wait blocking each caller until its slot.
//
// Usage:
//
//	limiter := ratelimit.PerMinute(60)
//	limiter.Wait()
//	// proceed with request
package ratelimit
