package chat

import "fmt"

// HTTPStatusError reports a non-2xx response from the inference endpoint.
// It is terminal unless the status code is in the transient allow-list, in
// which case the retry policy handles it beneath the logical call.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("nim: unexpected status %d: %s", e.StatusCode, e.Body)
}

// MalformedResponseError reports a response missing a field the wire
// contract guarantees. Always terminal.
type MalformedResponseError struct {
	Field string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("nim: malformed response: missing %s", e.Field)
}
