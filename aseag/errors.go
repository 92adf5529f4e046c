package aseag

import (
	"errors"
	"fmt"
)

// ErrorKind tells the two failure classes of a fetch apart.
type ErrorKind int

const (
	// KindTransport covers connection errors, timeouts, non-2xx responses
	// and unreadable bodies.
	KindTransport ErrorKind = iota + 1
	// KindMalformedPayload means the body was received but is not JSON.
	KindMalformedPayload
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindMalformedPayload:
		return "malformed payload"
	default:
		return "unknown"
	}
}

var (
	ErrTransport        = errors.New("aseag: transport failure")
	ErrMalformedPayload = errors.New("aseag: malformed payload")
)

// FetchError is returned by Client.Fetch for every failed request.
type FetchError struct {
	Kind       ErrorKind
	StopID     string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch stop %s: %s: HTTP %d", e.StopID, e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("fetch stop %s: %s: %v", e.StopID, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is lets errors.Is match the ErrTransport and ErrMalformedPayload sentinels.
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrMalformedPayload:
		return e.Kind == KindMalformedPayload
	}
	return false
}
