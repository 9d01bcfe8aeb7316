package civitai

import (
	"errors"
	"fmt"
)

// Kind classifies a failed lookup.
type Kind int

const (
	// KindNotFound means Civitai answered but has no such entity.
	KindNotFound Kind = iota + 1
	// KindTransient covers connection errors, timeouts, 429 and 5xx.
	KindTransient
	// KindMalformed means the body could not be decoded or lacks an id.
	KindMalformed
	// KindRejected covers any other non-200 status and invalid input.
	KindRejected
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindTransient:
		return "transient"
	case KindMalformed:
		return "malformed"
	case KindRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Error is returned by every failed lookup.
type Error struct {
	Kind     Kind
	Endpoint string
	// Ref is the id, hash or URL that was looked up.
	Ref    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("civitai %s %s: %s", e.Endpoint, e.Ref, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of a lookup error, or 0 for nil and foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsNotFound reports whether err means the entity does not exist on Civitai.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsTransient reports whether retrying later might succeed.
func IsTransient(err error) bool { return KindOf(err) == KindTransient }

// IsMalformed reports whether Civitai sent something we could not use.
func IsMalformed(err error) bool { return KindOf(err) == KindMalformed }

var (
	// ErrSidecarExists is returned when a writer refuses to replace a file.
	ErrSidecarExists = errors.New("sidecar already exists")
	// ErrNoTriggerWords is returned when a version has no trained words.
	ErrNoTriggerWords = errors.New("version has no trigger words")
	// ErrNoRecord is returned when a writer is handed a nil record.
	ErrNoRecord = errors.New("no record to write")
)
