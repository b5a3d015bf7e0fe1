package domain

import (
	"errors"
	"fmt"
)

// History navigation errors. These reflect caller-state mistakes, not
// transient failures, and are returned verbatim with no retry.
var (
	ErrEmptyHistory      = errors.New("no history")
	ErrNoPreviousArtwork = errors.New("no previous artwork")
	ErrAtHistoryStart    = errors.New("at beginning of history")
)

// ErrAllSourcesFailed is returned by the fetch orchestrator when every
// configured source failed; the wrapped error is the last source failure.
var ErrAllSourcesFailed = errors.New("all sources failed")

// FetchErrorKind classifies adapter-level fetch failures.
type FetchErrorKind string

const (
	FetchErrNetwork      FetchErrorKind = "network"
	FetchErrParse        FetchErrorKind = "parse"
	FetchErrNoResults    FetchErrorKind = "no_results"
	FetchErrNoValidImage FetchErrorKind = "no_valid_image"
)

// FetchError is a typed failure from a single source adapter. The
// orchestrator logs these and only surfaces the last one when every
// source has failed.
type FetchError struct {
	Source string
	Kind   FetchErrorKind
	Msg    string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Source, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Msg)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError builds a FetchError for the given source and kind.
// Parameters:
//   - source: adapter name (e.g. "Met").
//   - kind: failure classification.
//   - msg: short description of the failing step.
//   - err: underlying error, may be nil.
//
// Returns:
//   - *FetchError: typed adapter failure.
func NewFetchError(source string, kind FetchErrorKind, msg string, err error) *FetchError {
	return &FetchError{Source: source, Kind: kind, Msg: msg, Err: err}
}

// IsFetchErrorKind reports whether err is a FetchError of the given kind.
func IsFetchErrorKind(err error, kind FetchErrorKind) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind == kind
	}
	return false
}
