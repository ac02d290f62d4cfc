package hypixel

import "time"

// RetryPolicy controls how transient network failures (timeouts,
// connection-level errors) are retried. http errors and logical
// failures are never retried.
type RetryPolicy struct {
	// MaxAttempts is the total attempt budget, including the first try.
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
	MaxDelay    time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second * 2,
		Multiplier:  2,
		MaxDelay:    time.Second * 10,
	}
}

// delay returns the backoff spacing after the given 1-indexed failed
// attempt. deterministic, no jitter.
func (p RetryPolicy) delay(attempt int) time.Duration {
	d := float64(p.BaseDelay)
	for i := 1; i < attempt; i++ {
		d *= p.Multiplier
	}
	if p.MaxDelay > 0 && d > float64(p.MaxDelay) {
		d = float64(p.MaxDelay)
	}
	return time.Duration(d)
}
