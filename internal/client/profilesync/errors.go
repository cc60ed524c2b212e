package profilesync

import (
	"errors"
	"fmt"
)

// ErrValidationRejected is returned for an edit that was ignored. It is a
// gate, not a failure: the error slot is left alone.
var ErrValidationRejected = errors.New("validation rejected")

var (
	ErrRemoteSaveFailed  = errors.New("remote save failed")
	ErrRemoteFetchFailed = errors.New("remote fetch failed")
)

// RemoteError is what the error slot holds. It matches its Kind and the
// underlying cause with errors.Is.
type RemoteError struct {
	Kind error
	Err  error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *RemoteError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
