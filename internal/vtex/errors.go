package vtex

import "fmt"

// APIError is a non-2xx response from the platform. Callers that want to
// retry selectively can errors.As on it; the redemption flow treats every
// failure as terminal.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vtex: request failed with status %d: %s", e.StatusCode, e.Body)
}
