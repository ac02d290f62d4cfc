package hypixel

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the player name does not resolve or the
// player has no skyblock profiles. terminal, never retried.
var ErrNotFound = errors.New("not found")

// ErrRateLimited indicates the upstream rejected the request for
// quota reasons. surfaced distinctly so callers can back off on their
// own schedule.
var ErrRateLimited = errors.New("rate limited")

// UpstreamError wraps any other non-2xx or logical-failure response,
// carrying the upstream-supplied reason when one was given.
type UpstreamError struct {
	StatusCode int
	Reason     string
}

func (e *UpstreamError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("upstream error (status %d): %s", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("upstream error (status %d)", e.StatusCode)
}
