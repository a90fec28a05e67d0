package llm

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// defaultRetryBackoff is the wait before the single rate-limit retry when the
// provider's error carries no suggested delay.
const defaultRetryBackoff = 20 * time.Second

// IsRateLimitError checks if an error is a provider rate-limit error.
// Matches 429 status codes, RESOURCE_EXHAUSTED, and quota messages.
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "RESOURCE_EXHAUSTED") ||
		strings.Contains(errStr, "quota")
}

// retryDelayRegex matches "Please retry in Xs" or "retryDelay:Xs" patterns
var retryDelayRegex = regexp.MustCompile(`(?i)(?:Please retry in |retryDelay[:\s]+)(\d+(?:\.\d+)?)\s*s`)

// ExtractRetryDelay parses the API-suggested retry delay from a rate-limit
// error. Returns 0 if no delay is found in the error message.
//
// Example error message:
// "Error 429, Message: ... Please retry in 45.387061394s., Status: RESOURCE_EXHAUSTED"
func ExtractRetryDelay(err error) time.Duration {
	if err == nil {
		return 0
	}

	matches := retryDelayRegex.FindStringSubmatch(err.Error())
	if len(matches) < 2 {
		return 0
	}

	seconds, parseErr := strconv.ParseFloat(matches[1], 64)
	if parseErr != nil {
		return 0
	}

	return time.Duration(seconds * float64(time.Second))
}

// generateWithRetry runs call once and retries exactly once on a detected
// rate-limit error, honoring the API-suggested delay when present. Other
// errors propagate immediately; a failed retry fails the operation.
func generateWithRetry(ctx context.Context, call func(context.Context) (string, error)) (string, error) {
	response, err := call(ctx)
	if err == nil || !IsRateLimitError(err) {
		return response, err
	}

	backoff := ExtractRetryDelay(err)
	if backoff == 0 {
		backoff = defaultRetryBackoff
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(backoff):
	}

	return call(ctx)
}
