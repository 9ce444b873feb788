package remote

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a remote lookup matches no row.
var ErrNotFound = errors.New("not found")

// RemoteError wraps a network or service failure from the hosted database.
// Callers switch on the error value with errors.As, never on message text.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string { return fmt.Sprintf("remote %s: %v", e.Op, e.Err) }

func (e *RemoteError) Unwrap() error { return e.Err }

// wrap classifies a driver error: nil stays nil, not-found markers map to
// ErrNotFound, everything else becomes a RemoteError.
func wrap(op string, err error, notFound ...error) error {
	if err == nil {
		return nil
	}
	for _, nf := range notFound {
		if errors.Is(err, nf) {
			return ErrNotFound
		}
	}
	return &RemoteError{Op: op, Err: err}
}
