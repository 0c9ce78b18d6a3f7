// Package loaderr defines the two failure kinds shared by the asset decoders.
package loaderr

import (
	"errors"
	"fmt"
)

var (
	// ErrIO means the file is missing, unreadable or ended mid-read.
	ErrIO = errors.New("i/o error")

	// ErrFormat means the content is malformed or uses an unsupported encoding.
	ErrFormat = errors.New("format error")
)

// IO wraps err as an ErrIO failure of op on path.
func IO(pkg, op, path string, err error) error {
	return fmt.Errorf("%s: %s %s: %w: %w", pkg, op, path, ErrIO, err)
}

// Format returns an ErrFormat failure with a message.
func Format(pkg, path, msg string) error {
	return fmt.Errorf("%s: %s in %s: %w", pkg, msg, path, ErrFormat)
}

// IsIO reports whether err is an ErrIO failure.
func IsIO(err error) bool { return errors.Is(err, ErrIO) }

// IsFormat reports whether err is an ErrFormat failure.
func IsFormat(err error) bool { return errors.Is(err, ErrFormat) }
