package session

import "strings"

// Status describes the lifecycle state of a session.
type Status string

const (
	StatusUnspecified Status = ""
	// StatusWaiting indicates the roster is still assembling.
	StatusWaiting Status = "waiting"
	// StatusActive indicates turns are being played.
	StatusActive Status = "active"
	// StatusEnded is terminal.
	StatusEnded Status = "ended"
)

// IsValid reports whether the status is a supported lifecycle state.
func (s Status) IsValid() bool {
	switch s {
	case StatusWaiting, StatusActive, StatusEnded:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	if s == StatusUnspecified {
		return "unspecified"
	}
	return string(s)
}

// ParseStatus canonicalizes a status label.
func ParseStatus(value string) (Status, bool) {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	if !status.IsValid() {
		return StatusUnspecified, false
	}
	return status, true
}

// isTransitionAllowed enforces the waiting → active → ended lifecycle.
func isTransitionAllowed(from, to Status) bool {
	switch from {
	case StatusWaiting:
		return to == StatusActive
	case StatusActive:
		return to == StatusEnded
	default:
		return false
	}
}
