package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrRateLimit reports a 429 from the provider. RetryAfter is zero when the
// provider gave no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse reports content that is not valid JSON or does not
// match the requested schema. Schema names the schema that was requested,
// e.g. "config-sections"; it is empty for unstructured requests.
type ErrInvalidResponse struct {
	Schema  string
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	if e.Schema != "" {
		return fmt.Sprintf("invalid %s response: %v", e.Schema, e.Err)
	}
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable reports a provider that is down or unreachable.
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

// ErrRejected reports a request the provider refused outright (bad key,
// unknown model, malformed request). Repeating it cannot succeed.
type ErrRejected struct {
	StatusCode int
	Err        error
}

func (e *ErrRejected) Error() string {
	return fmt.Sprintf("LLM request rejected (HTTP %d): %v", e.StatusCode, e.Err)
}

func (e *ErrRejected) Unwrap() error { return e.Err }

// statusError maps an HTTP status from a provider SDK onto the error types
// above. hint is the Retry-After delay, when the SDK exposes it.
func statusError(status int, hint time.Duration, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: hint, Err: err}
	case status >= 400 && status < 500 && status != http.StatusRequestTimeout:
		return &ErrRejected{StatusCode: status, Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}

// ErrMaxTokensExceeded reports a structured response cut off at the token
// limit. A truncated sections object cannot be parsed, so it is never used.
type ErrMaxTokensExceeded struct {
	Schema  string
	Limit   int
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	what := "LLM"
	if e.Schema != "" {
		what = e.Schema
	}
	if e.Limit > 0 {
		return fmt.Sprintf("%s response truncated at %d tokens", what, e.Limit)
	}
	return what + " response truncated: max tokens exceeded"
}

// SchemaName returns the schema an invalid or truncated response was
// checked against, or "" when err carries none.
func SchemaName(err error) string {
	var inv *ErrInvalidResponse
	if errors.As(err, &inv) {
		return inv.Schema
	}
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return maxTok.Schema
	}
	return ""
}

type retryClass int

const (
	retryNever retryClass = iota
	retryOnce
	retryAlways
)

func classify(err error) retryClass {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return retryNever
	}
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return retryNever
	}
	var rejected *ErrRejected
	if errors.As(err, &rejected) {
		return retryNever
	}
	var inv *ErrInvalidResponse
	if errors.As(err, &inv) {
		return retryOnce
	}
	return retryAlways
}

// retryAfter reads a Retry-After header given in seconds or as an HTTP date.
func retryAfter(h http.Header, now time.Time) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}
