// Package errs defines the sentinel errors shared by the npyz packages.
//
// Errors are compared with errors.Is. Most concrete encoding failures wrap
// ErrEncoding so callers can test for the whole category at once:
//
//	if errors.Is(err, errs.ErrEncoding) {
//	    // malformed shape, size mismatch, oversized header, ...
//	}
package errs

import (
	"errors"
	"fmt"
)

// Encoding errors.
var (
	// ErrUnsupportedType is returned when an element type has no descriptor mapping.
	ErrUnsupportedType = errors.New("unsupported element type")

	// ErrEncoding is the parent of all shape and header construction failures.
	ErrEncoding = errors.New("encoding error")

	ErrInvalidShape       = fmt.Errorf("%w: invalid shape", ErrEncoding)
	ErrDataSizeMismatch   = fmt.Errorf("%w: data size does not match shape", ErrEncoding)
	ErrHeaderTooLarge     = fmt.Errorf("%w: header too large", ErrEncoding)
	ErrInvalidArrayName   = fmt.Errorf("%w: invalid array name", ErrEncoding)
	ErrInvalidCompression = fmt.Errorf("%w: invalid compression", ErrEncoding)
)

// Destination errors.
var (
	// ErrDestination wraps failures to create, write or close an output destination.
	// The underlying error remains reachable through errors.Is and errors.As.
	ErrDestination = errors.New("destination error")

	// ErrEmptyArchive describes an archive written with zero entries. It is advisory
	// and only ever logged.
	ErrEmptyArchive = errors.New("no arrays to write: archive will be empty")
)

// Decoding errors.
var (
	ErrInvalidMagic       = errors.New("invalid npy magic")
	ErrUnsupportedVersion = errors.New("unsupported npy format version")
	ErrInvalidHeader      = errors.New("invalid npy header")
	ErrInvalidPayload     = errors.New("invalid npy payload")
	ErrArrayNotFound      = errors.New("array not found")
	ErrInvalidArchive     = errors.New("invalid npz archive")
)

// Destination wraps err as a destination failure for the given target.
// It returns nil when err is nil.
func Destination(target string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w %q: %w", ErrDestination, target, err)
}
