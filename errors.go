package glyphfix

import (
	"errors"
	"fmt"
)

// Sentinel errors for the glyphfix package.
var (
	// ErrNoDocument is returned when a run is started without a document.
	ErrNoDocument = errors.New("glyphfix: no document open")

	// ErrHostUnavailable is wrapped by hosts whose document went away while
	// a batch was being written. It aborts the rest of the batch.
	ErrHostUnavailable = errors.New("glyphfix: host document unavailable")

	// ErrBusy is returned when a run starts while another is in flight.
	ErrBusy = errors.New("glyphfix: a scan or apply is already running")

	// ErrNoCandidate is recorded for mirrored components no flip can repair.
	ErrNoCandidate = errors.New("glyphfix: no flip restores a positive determinant")

	// ErrNonFiniteTransform is returned by the codec for NaN or infinite values.
	ErrNonFiniteTransform = errors.New("glyphfix: transform has non-finite values")
)

// UserInputError reports an invalid setting or an unusable scope. Runs that
// fail with it never reach the host's mutation calls.
type UserInputError struct {
	Field  string
	Reason string
	Err    error
}

func (e *UserInputError) Error() string {
	if e.Field == "" {
		return "glyphfix: " + e.Reason
	}
	return fmt.Sprintf("glyphfix: invalid %s: %s", e.Field, e.Reason)
}

func (e *UserInputError) Unwrap() error { return e.Err }

// WriteError records a component whose corrected transform could not be
// committed. Apply collects these instead of returning them.
type WriteError struct {
	Glyph string
	Layer string
	Index int
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("glyphfix: write /%s layer %q component %d: %v", e.Glyph, e.Layer, e.Index, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// IsUserInput reports whether err is (or wraps) a UserInputError.
func IsUserInput(err error) bool {
	var uie *UserInputError
	return errors.As(err, &uie)
}
