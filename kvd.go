// Package kvd holds the small set of helpers shared by every package in the
// store: error wrapping and stack traces. Everything domain-specific lives in
// murmur, list, value, store, heap, ttlqueue, handlers, dispatch and server.
package kvd

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// WithStack wraps err with a stack trace unless it already carries one, so
// repeated wrapping up a call chain doesn't pile up redundant frames.
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(stackTracer); !ok {
		return errors.WithStack(err)
	}
	return err
}

// StackTrace renders the stack trace attached to err by WithStack, or the
// empty string if err doesn't carry one.
func StackTrace(err error) string {
	buf := &bytes.Buffer{}
	if err, ok := err.(stackTracer); ok {
		for _, f := range err.StackTrace() {
			fmt.Fprintf(buf, "%+v\n", f)
		}
	}
	return buf.String()
}
