package joingo

import (
	"errors"
	"fmt"
)

var (
	// ErrCollectionEnded is returned when a collection call arrives after
	// the end-of-collection signal has fired. This is a programming error
	// in the host; there is no recovery path.
	ErrCollectionEnded = errors.New("collection has ended")

	// ErrClosed is returned when an aggregator is used after Close.
	ErrClosed = errors.New("aggregator is closed")
)

// ErrJoinFieldInactive indicates the child document type has no active
// join-field mapping. Raised at setup, before any collection.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrJoinFieldInactive struct {
	ChildType string
	cause     error
}

func (e *ErrJoinFieldInactive) Error() string {
	return fmt.Sprintf("no active join field configured for child type %q", e.ChildType)
}

func (e *ErrJoinFieldInactive) Unwrap() error { return e.cause }

// NewErrJoinFieldInactive creates an ErrJoinFieldInactive for the given child type.
func NewErrJoinFieldInactive(childType string) *ErrJoinFieldInactive {
	return &ErrJoinFieldInactive{ChildType: childType}
}

// ErrOrdinalOutOfRange indicates an ordinal observed during collection
// exceeded the bound the index was sized with at construction time.
// This is a fatal precondition violation, not recoverable.
type ErrOrdinalOutOfRange struct {
	Ordinal int64
	MaxOrd  int64
}

func (e *ErrOrdinalOutOfRange) Error() string {
	return fmt.Sprintf("ordinal %d out of range [0, %d)", e.Ordinal, e.MaxOrd)
}
