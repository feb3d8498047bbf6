package glyphrun

import "errors"

var (
	// ErrFontLoad indicates a font could not be loaded or an unloaded face
	// reached a render call. It is fatal: no fallback is attempted for it.
	ErrFontLoad = errors.New("font load failed")

	// ErrShaping indicates the shaping engine failed for a render call.
	// The call is aborted and not retried.
	ErrShaping = errors.New("shaping failed")
)
