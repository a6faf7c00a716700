package rediscache

import (
	"errors"
	"fmt"
)

var (
	ErrNilProvider = errors.New("rediscache: provider is required")
	ErrClosed      = errors.New("rediscache: connection closed")
)

// InitError reports why the adapter could not be activated.
// Stage is one of "connect", "ping", "register".
type InitError struct {
	Stage string
	Err   error
}

func (e *InitError) Error() string {
	switch e.Stage {
	case "connect":
		return fmt.Sprintf("rediscache: connect store: %v", e.Err)
	case "ping":
		return fmt.Sprintf("rediscache: ping store: %v", e.Err)
	case "register":
		return fmt.Sprintf("rediscache: add cache hook: %v", e.Err)
	default:
		return fmt.Sprintf("rediscache: init: %v", e.Err)
	}
}

func (e *InitError) Unwrap() error { return e.Err }
