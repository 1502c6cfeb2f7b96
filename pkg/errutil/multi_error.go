// Package errutil contains helpers for combining errors.
package errutil

import "strings"

// Multi combines the non-nil errors among errs. It returns nil when there are
// none and the error itself when there is exactly one. Errors previously
// returned by Multi are flattened, so nesting calls does not nest messages.
//
// The combined error supports errors.Is and errors.As on each of its parts.
func Multi(errs ...error) error {
	var parts []error
	for _, err := range errs {
		switch err := err.(type) {
		case nil:
		case multiError:
			parts = append(parts, err...)
		default:
			parts = append(parts, err)
		}
	}
	switch len(parts) {
	case 0:
		return nil
	case 1:
		return parts[0]
	default:
		return multiError(parts)
	}
}

// Closer is the subset of io.Closer needed by CloseAll.
type Closer interface {
	Close() error
}

// CloseAll closes all closers in reverse order and combines their errors.
// Nil closers are skipped.
func CloseAll(closers ...Closer) error {
	errs := make([]error, 0, len(closers))
	for i := len(closers) - 1; i >= 0; i-- {
		if closers[i] != nil {
			errs = append(errs, closers[i].Close())
		}
	}
	return Multi(errs...)
}

type multiError []error

func (me multiError) Error() string {
	var sb strings.Builder
	sb.WriteString("multiple errors: ")
	for i, e := range me {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}

func (me multiError) Unwrap() []error { return me }
