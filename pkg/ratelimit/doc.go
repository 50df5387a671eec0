// Package ratelimit paces outgoing requests to the repeat-photography site.
//
// PerMinute builds the limiter used by both pipelines from
// rate_limit.requests_per_minute; zero disables pacing.
//
//	limiter := ratelimit.PerMinute(cfg.RateLimit.RequestsPerMinute)
//	if err := limiter.Wait(ctx); err != nil {
//	    return err // context cancelled
//	}
package ratelimit
