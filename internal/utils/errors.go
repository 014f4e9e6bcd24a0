package utils

import (
	"errors"
	"fmt"
)

var (
	ErrMissingContentLength = errors.New("server didn't provide Content-Length header")
	ErrInvalidContentLength = errors.New("invalid Content-Length reported by server")
	ErrBadStatus            = errors.New("unexpected status code")
	ErrLengthMismatch       = errors.New("content length mismatch")
	ErrUnexpected           = errors.New("unexpected error")
)

// NamingError reports that no usable file name could be derived.
type NamingError struct {
	URL    string
	Reason string
	Err    error
}

func (e *NamingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot derive file name for %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot derive file name for %s: %s", e.URL, e.Reason)
}

func (e *NamingError) Unwrap() error {
	return e.Err
}

type ExtensionParseError struct {
	ContentType string
}

func (e *ExtensionParseError) Error() string {
	return fmt.Sprintf("unable to parse file extension from content type %q", e.ContentType)
}

// TransferError wraps every failure of the streaming engine. StatusCode is
// set only when the server answered with a non-2xx status.
type TransferError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransferError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %v: %d", e.Op, e.Err, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
