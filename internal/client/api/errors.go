package api

import "fmt"

// StatusError reports a non-2xx response. Message holds the backend's
// structured error message when the body was parseable; otherwise Error()
// falls back to a generic status-code message.
type StatusError struct {
	Op      string // operation name, e.g. "login", "delete deck"
	Code    int    // HTTP status code
	Message string // parsed {"message": ...} body, may be empty
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s failed: status %d", e.Op, e.Code)
}
