package remote

import "fmt"

// DeserializationError reports a response body that could not be turned into
// catalog records
type DeserializationError struct {
	URL string
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("remote: cannot deserialize response from %s: %v", e.URL, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// StatusError reports a non-success HTTP status from the product API
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote: %s returned status %d", e.URL, e.StatusCode)
}

// Retryable reports whether the request may succeed if sent again
func (e *StatusError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}
