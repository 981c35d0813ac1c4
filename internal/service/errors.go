package service

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrRemoteUnavailable means the upstream API could not be reached
	ErrRemoteUnavailable = errors.New("remote unavailable")

	// ErrRemoteStatus matches any *RemoteStatusError via errors.Is
	ErrRemoteStatus = errors.New("remote status")

	// ErrRemoteDecode means the upstream body was not the JSON we expected
	ErrRemoteDecode = errors.New("remote decode error")

	// ErrChainTooDeep is returned when a principal-reference chain does not
	// terminate within the configured number of hops.
	ErrChainTooDeep = errors.New("principal chain too deep")

	// ErrNoteStoreUnavailable wraps failures of the note store itself.
	// A missing note is not an error.
	ErrNoteStoreUnavailable = errors.New("note store unavailable")
)

// RemoteStatusError is returned when an upstream API answers with a non-2xx status
type RemoteStatusError struct {
	URL  string
	Code int
}

func (e *RemoteStatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status code: %d", e.URL, e.Code)
}

func (e *RemoteStatusError) Is(target error) bool {
	return target == ErrRemoteStatus
}

// IsNotFound reports whether err carries an upstream 404
func IsNotFound(err error) bool {
	var se *RemoteStatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}
