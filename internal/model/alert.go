package model

// AlertLevel distinguishes acknowledgements from failures.
type AlertLevel string

const (
	AlertInfo  AlertLevel = "info"
	AlertError AlertLevel = "error"
)

// Alert is a user-facing message produced by an action.
type Alert struct {
	Level   AlertLevel `json:"level"`
	Message string     `json:"message"`
}

// Info builds an informational alert.
func Info(msg string) Alert {
	return Alert{Level: AlertInfo, Message: msg}
}

// Error builds an error alert.
func Error(msg string) Alert {
	return Alert{Level: AlertError, Message: msg}
}

// IsError reports whether the alert is a failure.
func (a Alert) IsError() bool {
	return a.Level == AlertError
}

// Empty reports whether there is nothing to show.
func (a Alert) Empty() bool {
	return a.Message == ""
}
