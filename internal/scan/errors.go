package scan

import "errors"

// busyError signals that another batch holds the Scanner.
type busyError struct{ op string }

func (e busyError) Error() string { return "scanner busy: " + e.op + " rejected while another batch runs" }

// ErrBusy constructs a busyError for op.
func ErrBusy(op string) error { return busyError{op: op} }

// IsBusy reports whether err was returned because a batch was already running.
func IsBusy(err error) bool {
	var be busyError
	return errors.As(err, &be)
}
