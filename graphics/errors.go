package graphics

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrWindowClosed is returned by every drawing operation on a closed window.
	ErrWindowClosed      = errors.New("operation on closed window")
	ErrAlreadyDrawn      = errors.New("object currently drawn")
	ErrUnsupportedOption = errors.New("object doesn't support operation")
	ErrBadOption         = errors.New("illegal option value")
)
