package hxmount

import (
	"errors"

	"github.com/pthm/hxmount/lib/dom"
	"github.com/pthm/hxmount/lib/props"
)

// Sentinel errors for mount operations.
//
// None of these reach callers of Mount or MountAll, which never fail; they
// surface in debug logs, in Framework and Constructor implementations, and
// from the stamp helpers.
var (
	ErrNotFound             = errors.New("hxmount: stamp not found")
	ErrInvalidSelector      = dom.ErrInvalidSelector
	ErrInvalidComponent     = errors.New("hxmount: component is neither a Renderer nor a Constructor")
	ErrFrameworkUnavailable = errors.New("hxmount: framework unavailable")
	ErrRenderFailed         = errors.New("hxmount: render failed")
	ErrDecodeProps          = props.ErrDecode
	ErrDecryptFailed        = errors.New("hxmount: stamp decryption failed")
	ErrSignatureInvalid     = errors.New("hxmount: stamp signature verification failed")
	ErrInvalidFormat        = errors.New("hxmount: invalid stamp format")
)

// IsNotFound checks if err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDecryptionError checks if err is a decryption or signature error.
func IsDecryptionError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) || errors.Is(err, ErrSignatureInvalid)
}

// IsRenderError checks if err came from rendering or decoding a component.
func IsRenderError(err error) bool {
	return errors.Is(err, ErrRenderFailed) || errors.Is(err, ErrDecodeProps)
}
