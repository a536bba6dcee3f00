package hid

import (
	"errors"
	"fmt"
)

// ErrSessionActive is returned when a second Session is constructed while
// another one is still open. hidapi's init/exit pair is process-global and
// not reentrant-safe.
var ErrSessionActive = errors.New("another hidapi session is already active")

// ErrSessionClosed is returned when a closed Session is used.
var ErrSessionClosed = errors.New("hidapi session is closed")

// ErrDeviceClosed is returned when an operation is attempted on a closed or
// empty device handle.
var ErrDeviceClosed = errors.New("device is closed")

// ErrNoErrorMessage reports that the device signaled a failure but hidapi
// could not produce an error message for it. This is distinct from an
// ordinary device error: it means the error-reporting path itself
// misbehaved.
var ErrNoErrorMessage = errors.New("device reported an error but no error message is available")

// DeviceError is the failure type for all device operations. It records the
// failed operation, the device path when known, and the underlying cause
// for errors.Is/As inspection.
type DeviceError struct {
	Op   string
	Path string
	Err  error
}

func (e *DeviceError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("hid: %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("hid: %s: %v", e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }

// translateError bridges hidapi's last-error-per-handle convention into a
// DeviceError. The call error already carries the handle's hid_error text
// when the binding produced one, so it takes precedence; a failure with no
// call error falls back to querying the handle directly, and if that also
// yields nothing the result is tagged ErrNoErrorMessage.
func translateError(op, path string, raw RawDevice, callErr error) error {
	if callErr != nil {
		return &DeviceError{Op: op, Path: path, Err: callErr}
	}
	if last := raw.Error(); last != nil {
		return &DeviceError{Op: op, Path: path, Err: last}
	}
	return &DeviceError{Op: op, Path: path, Err: ErrNoErrorMessage}
}
