package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrLoginRequired is returned before any I/O when an endpoint needs a
// refresh token and none is stored.
var ErrLoginRequired = errors.New("login required")

// StatusError means the server answered with a non-2xx status.
type StatusError struct {
	Code int
	// Message is the "message" field of a JSON body, if any.
	Message string
	// Body is the raw response body.
	Body string
}

func newStatusError(code int, payload []byte) *StatusError {
	se := &StatusError{Code: code, Body: strings.TrimSpace(string(payload))}
	var envelope struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(payload, &envelope) == nil {
		se.Message = envelope.Message
	}
	return se
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http status %d: %s", e.Code, e.Detail())
}

// StatusText is the reason phrase for Code.
func (e *StatusError) StatusText() string {
	return http.StatusText(e.Code)
}

// Detail prefers the JSON message, then the status text.
func (e *StatusError) Detail() string {
	if e.Message != "" {
		return e.Message
	}
	return e.StatusText()
}

// TextBody returns the body when it is plain text rather than JSON.
func (e *StatusError) TextBody() (string, bool) {
	if e.Body == "" || json.Valid([]byte(e.Body)) && strings.HasPrefix(e.Body, "{") {
		return "", false
	}
	return text([]byte(e.Body)), true
}

// TransportError means the request was sent but no response came back.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RequestError means the request could not be constructed.
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

const (
	msgNetwork       = "Network error: cannot connect to the server."
	msgLoginRequired = "Login is required."
	msgUnexpected    = "An unexpected error occurred: %s"
)

// DescribeLoadError renders a failed read the way list and detail pages show it.
func DescribeLoadError(err error) string {
	if err == nil {
		return ""
	}
	var statusErr *StatusError
	var transportErr *TransportError
	switch {
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Error: %d - %s", statusErr.Code, statusErr.Detail())
	case errors.As(err, &transportErr):
		return msgNetwork
	case errors.Is(err, ErrLoginRequired):
		return msgLoginRequired
	default:
		return fmt.Sprintf(msgUnexpected, unwrapMessage(err))
	}
}

func unwrapMessage(err error) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Err != nil {
		return reqErr.Err.Error()
	}
	return err.Error()
}
