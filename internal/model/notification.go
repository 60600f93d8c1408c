package model

// Severity distinguishes informational notifications from failures.
type Severity int

const (
	SeverityNormal Severity = iota
	SeverityDestructive
)

// Notification is one user-facing outcome of an operation.
type Notification struct {
	Title       string
	Description string
	Severity    Severity
}
