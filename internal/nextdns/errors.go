package nextdns

import (
	"errors"
	"fmt"
	"net/http"
)

// UpstreamError is returned when the upstream API answers with a non-2xx status.
// Message holds the upstream response body as text.
type UpstreamError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("nextdns api error: %d - %s", e.Status, e.Message)
}

// StatusCode extracts the upstream HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Status, true
	}
	return 0, false
}

func newUpstreamError(status int, body string) *UpstreamError {
	if body == "" {
		body = http.StatusText(status)
	}
	return &UpstreamError{Status: status, Message: body}
}
