package printer

import "errors"

var (
	// ErrRange indicates a byte range outside the arena or with start > end.
	ErrRange = errors.New("printer: invalid byte range")
	// ErrUnknownFormat indicates an unsupported output format.
	ErrUnknownFormat = errors.New("printer: unknown format")
	// ErrUnknownCharset indicates a code page name the printer cannot decode.
	ErrUnknownCharset = errors.New("printer: unknown charset")
)
