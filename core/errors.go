package live

import (
	"errors"
	"fmt"
)

var (
	// ErrNoConfiguration is returned by Connect when no session
	// configuration was provided.
	ErrNoConfiguration = errors.New("no session configuration provided")

	// ErrNotConnected is returned by operations that require an open
	// session.
	ErrNotConnected = errors.New("session not open")
)

// ConnectionError reports a session that failed to establish or negotiate.
type ConnectionError struct {
	Reason string
	Cause  error
}

func (e *ConnectionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to establish session: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("failed to establish session: %s", e.Reason)
}

func (e *ConnectionError) Unwrap() error { return e.Cause }

// TransportError reports a mid-session transport failure. It is never
// returned to a caller directly; it surfaces as the reason on the session
// closed event, since nobody is synchronously waiting when it happens.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("session transport failed: %v", e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }
