package ssd1322

import (
	"errors"
	"fmt"
)

// Errors
var (
	// ErrBounds indicates a window outside the panel extent or not aligned
	// to the two pixel column granularity.
	ErrBounds = errors.New("ssd1322: window out of display bounds")

	// ErrBufferSize indicates pixel data whose length does not match the
	// addressed window.
	ErrBufferSize = errors.New("ssd1322: buffer size mismatch")

	// ErrUnsupportedSize indicates panel dimensions the controller cannot
	// drive.
	ErrUnsupportedSize = errors.New("ssd1322: unsupported display size")

	// ErrDCPin and ErrResetPin indicate missing GPIO capabilities at
	// construction.
	ErrDCPin    = errors.New("ssd1322: data/command (DC) GPIO pin is invalid")
	ErrResetPin = errors.New("ssd1322: reset GPIO pin is invalid")
)

// TransportError wraps a bus or GPIO failure. The operation it aborted is
// left incomplete; the driver performs no retry since the controller offers
// no acknowledgement that would make one safe.
type TransportError struct {
	// Op names the failed transport operation.
	Op string

	// Err is the underlying bus or GPIO error.
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("ssd1322: %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
