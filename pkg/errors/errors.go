package errors

import (
	stderrors "errors"
	"fmt"
)

/*
Kind separates the failures that abort a run from each other. Anything that
is not one of these kinds is either skipped locally (a malformed post
container, an unmatched timeline line) or reported as a user-visible signal
such as the "No tweets found" sentinel.
*/
type Kind int

const (
	KindUnknown Kind = iota
	KindResourceAcquisitionFailed
	KindArtifactFetchFailed
	KindCompletionServiceFailed
	KindInvalidInput
)

func (kind Kind) String() string {
	switch kind {
	case KindResourceAcquisitionFailed:
		return "ResourceAcquisitionFailed"
	case KindArtifactFetchFailed:
		return "ArtifactFetchFailed"
	case KindCompletionServiceFailed:
		return "CompletionServiceFailed"
	case KindInvalidInput:
		return "InvalidInput"
	default:
		return "Unknown"
	}
}

/*
Error is a fatal failure of a given Kind, optionally carrying the error that
caused it.
*/
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

var (
	ErrResourceAcquisition = &Error{Kind: KindResourceAcquisitionFailed, Message: "resource acquisition failed"}
	ErrArtifactFetch       = &Error{Kind: KindArtifactFetchFailed, Message: "index artifact fetch failed"}
	ErrCompletionService   = &Error{Kind: KindCompletionServiceFailed, Message: "completion service failed"}
	ErrInvalidInput        = &Error{Kind: KindInvalidInput, Message: "invalid input"}
)

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}

	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

/*
Is reports a match on Kind, so errors.Is(err, ErrArtifactFetch) holds for
every artifact failure no matter its message or cause.
*/
func (e *Error) Is(target error) bool {
	var other *Error

	if !stderrors.As(target, &other) {
		return false
	}

	return e.Kind == other.Kind
}

// WithMessagef creates a *copy* of an Error with a formatted message.
// It does not modify the original error variable.
func (e *Error) WithMessagef(format string, args ...any) *Error {
	newErr := *e
	newErr.Message = fmt.Sprintf(format, args...)
	return &newErr
}

// Wrap returns a copy of e with err attached as its cause.
func (e *Error) Wrap(err error) *Error {
	newErr := *e
	newErr.Err = err
	return &newErr
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var target *Error

	if stderrors.As(err, &target) {
		return target.Kind
	}

	return KindUnknown
}
