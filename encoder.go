package hxmount

import (
	"errors"
	"fmt"

	"github.com/pthm/hxmount/lib/dom"
	"github.com/pthm/hxmount/lib/encoding"
	"golang.org/x/net/html"
)

// StampAttr is the attribute that carries a mount node's encoded props.
// It is deliberately not a data-* attribute so a stamped element derives
// the same props when mounted again.
const StampAttr = "hx-props"

// Encoder is an alias for encoding.Encoder for convenience.
type Encoder = encoding.Encoder

// NewEncoder creates a new encoder with the given key.
func NewEncoder(key []byte) (*Encoder, error) {
	return encoding.NewEncoder(key)
}

// DecodeStamp decodes a token produced by a Mounter configured WithStamp.
func DecodeStamp(enc *Encoder, token string, sensitive bool) (Props, error) {
	p, err := enc.Decode(token, sensitive)
	if err != nil {
		return nil, wrapEncodingError(err)
	}
	return p, nil
}

// ReadStamp decodes the stamp on node. It returns ErrNotFound when the node
// carries none.
func ReadStamp(enc *Encoder, node *html.Node, sensitive bool) (Props, error) {
	if !dom.HasAttr(node, StampAttr) {
		return nil, ErrNotFound
	}
	return DecodeStamp(enc, dom.Attr(node, StampAttr, ""), sensitive)
}

// wrapEncodingError wraps encoding package errors with hxmount sentinel errors.
func wrapEncodingError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, encoding.ErrInvalidFormat) {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if errors.Is(err, encoding.ErrSignatureInvalid) {
		return ErrSignatureInvalid
	}
	if errors.Is(err, encoding.ErrDecryptFailed) {
		return ErrDecryptFailed
	}
	return err
}
