// Package common defines shared sentinel errors and small byte utilities
// used across the FastFS upload tooling. Callers should use errors.Is /
// errors.As to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Encoding errors, raised before any network call.
	ErrLengthOverflow  = errors.New("length field overflows u32")
	ErrContentTooLarge = errors.New("content exceeds u32 full size")

	// Frame decoding errors.
	ErrTruncatedFrame  = errors.New("truncated frame")
	ErrUnknownFrameTag = errors.New("unknown frame tag")
	ErrTrailingBytes   = errors.New("trailing bytes after frame")

	// Planner errors.
	ErrInvalidChunkSize = errors.New("max chunk size must be at least 1 byte")

	// Configuration / credential errors.
	ErrUnknownNetwork = errors.New("cannot determine network from receiver account")
	ErrInvalidKey     = errors.New("invalid key")

	// Journal errors.
	ErrorNotFound = errors.New("not found")
)

// TransportError is returned when the external broadcaster exits non-zero
// without the expected no-code marker. Both captured streams are carried so
// the caller can surface them verbatim.
type TransportError struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("broadcast failed with exit code %d", e.ExitCode)
}
