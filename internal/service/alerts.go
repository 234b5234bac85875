package service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/helper-labs/helper-portal/internal/apiclient"
	"github.com/helper-labs/helper-portal/internal/model"
)

const (
	msgUnauthorized  = "You are not authenticated or your session has expired. Please log in."
	msgForbidden     = "You do not have permission to perform this action."
	msgUnreachable   = "Cannot connect to the server. Please check your network."
	msgUnexpectedFmt = "An unexpected error occurred: %s"
	msgMissingFields = "Please enter both a title and content."
	msgMissingBody   = "Please enter the content."
)

// mutationAlert renders a failed write. 401 and 403 get fixed messages no
// matter what the server said; other statuses show a text body if there is
// one, else fallback.
func mutationAlert(err error, fallback, forbidden string) model.Alert {
	if forbidden == "" {
		forbidden = msgForbidden
	}
	var statusErr *apiclient.StatusError
	var transportErr *apiclient.TransportError
	switch {
	case errors.As(err, &statusErr):
		switch statusErr.Code {
		case http.StatusUnauthorized:
			return model.Error(msgUnauthorized)
		case http.StatusForbidden:
			return model.Error(forbidden)
		}
		if body, ok := statusErr.TextBody(); ok {
			return model.Error(body)
		}
		return model.Error(fallback)
	case errors.As(err, &transportErr):
		return model.Error(msgUnreachable)
	default:
		return model.Error(fmt.Sprintf(msgUnexpectedFmt, err))
	}
}

// viewError renders a failed detail fetch: a plain text body when the
// server sent one, else the JSON message or status text.
func viewError(err error) string {
	var statusErr *apiclient.StatusError
	if errors.As(err, &statusErr) {
		detail, ok := statusErr.TextBody()
		if !ok {
			detail = statusErr.Detail()
		}
		return fmt.Sprintf("Error: %d - %s", statusErr.Code, detail)
	}
	return apiclient.DescribeLoadError(err)
}
