package shortcut

import "errors"

// busyError signals that another shortcut batch is running.
type busyError struct{ op string }

func (e busyError) Error() string {
	return "shortcuts busy: " + e.op + " rejected while another batch runs"
}

// IsBusy reports whether err was returned because a shortcut batch was
// already running.
func IsBusy(err error) bool {
	var be busyError
	return errors.As(err, &be)
}
