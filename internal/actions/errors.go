package actions

import (
	"errors"
	"fmt"
)

// badInputError marks errors caused by the caller's input (HTTP 400).
type badInputError struct{ err error }

func (e badInputError) Error() string { return e.err.Error() }
func (e badInputError) Unwrap() error { return e.err }

func invalidInput(err error) error { return badInputError{err: err} }

// ErrBadInput returns an input error carrying msg.
func ErrBadInput(msg string) error { return invalidInput(errors.New(msg)) }

func errMissing(field string) error { return fmt.Errorf("%s is required", field) }

// IsBadInput reports whether err was caused by invalid input.
func IsBadInput(err error) bool {
	var bi badInputError
	return errors.As(err, &bi)
}
