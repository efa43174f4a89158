package asciify

import "errors"

var (
	// ErrDecode reports input bytes that are not a readable image. It is
	// returned before any configuration is validated and wraps the
	// underlying decoder error.
	ErrDecode = errors.New("unable to decode image")

	// ErrInvalidConfiguration reports a Config that cannot produce a frame.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
