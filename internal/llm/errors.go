package llm

import (
	"errors"
	"fmt"
	"time"
)

// ErrRemoteAPI reports a failed call to the completion endpoint.
// StatusCode is zero when no HTTP response was received, in which case
// Err holds the transport failure.
type ErrRemoteAPI struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ErrRemoteAPI) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("remote API request failed: %v", e.Err)
	}
	return fmt.Sprintf("remote API error (status %d): %s", e.StatusCode, e.Body)
}

func (e *ErrRemoteAPI) Unwrap() error { return e.Err }

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned content that does not
// conform to the requested schema, or no content at all.
type ErrInvalidResponse struct {
	Content string
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrNotConfigured is returned when no provider could be built from the
// environment. Local features keep working without one.
var ErrNotConfigured = errors.New("no LLM provider configured (set ALBERT_API_KEY or REGEXLAB_LLM_PROVIDER)")

// classifyStatus wraps a remote failure in the matching typed error.
// 429 is a rate limit and 5xx means the backend is unavailable; both
// still unwrap to the *ErrRemoteAPI carrying the status and body.
func classifyStatus(apiErr *ErrRemoteAPI) error {
	switch {
	case apiErr.StatusCode == 429:
		return &ErrRateLimit{Err: apiErr}
	case apiErr.StatusCode >= 500 || apiErr.StatusCode == 0:
		return &ErrProviderUnavailable{Err: apiErr}
	default:
		return apiErr
	}
}
