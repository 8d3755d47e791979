package journal

import (
	"errors"
	"fmt"
)

// Reason names why an entry failed validation.
type Reason string

const (
	EmptyTitle   Reason = "EmptyTitle"
	EmptyBody    Reason = "EmptyBody"
	TitleTooLong Reason = "TitleTooLong"
	InvalidDate  Reason = "InvalidDate"
)

// ErrValidation matches any *ValidationError with errors.Is.
var ErrValidation = errors.New("journal: validation failed")

// ValidationError blocks a save before any storage I/O happens.
type ValidationError struct {
	Reason Reason
	Value  string
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case EmptyTitle:
		return "journal: title is required"
	case EmptyBody:
		return "journal: text is required"
	case TitleTooLong:
		return fmt.Sprintf("journal: title is longer than %d characters", MaxTitleLength)
	case InvalidDate:
		return fmt.Sprintf("journal: invalid date %q, expected YYYY-MM-DD", e.Value)
	default:
		return fmt.Sprintf("journal: invalid entry (%s)", e.Reason)
	}
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IsReason reports whether err is a validation failure for reason.
func IsReason(err error, reason Reason) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Reason == reason
}

// IOError wraps an entry store failure. The caller may retry.
type IOError struct {
	Op  string
	Key string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("journal: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
