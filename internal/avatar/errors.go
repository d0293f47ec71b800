package avatar

import "fmt"

// ErrorKind classifies avatar fetch failures.
type ErrorKind int

const (
	// Unknown covers failures other than transport errors, such as a broken
	// stream after a successful response or a malformed request.
	Unknown ErrorKind = iota
	// NetworkFailure covers connection errors and non-2xx responses.
	NetworkFailure
)

func (k ErrorKind) String() string {
	switch k {
	case NetworkFailure:
		return "network_failure"
	default:
		return "unknown"
	}
}

// FetchError is returned by Fetcher.Fetch and recorded by Image when the
// stream breaks mid-read.
type FetchError struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("avatar fetch failed (%s, status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("avatar fetch failed (%s): %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
