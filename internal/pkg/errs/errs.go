package errs

import (
	cr "github.com/cockroachdb/errors"
)

// Wrap annotates err with msg and a stack trace; a nil err stays nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

// Mark tags err so errs.Is matches markErr without changing its message.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Is understands both cockroach marks and standard wrapping.
func Is(err, reference error) bool {
	return cr.Is(err, reference)
}
