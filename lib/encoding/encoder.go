// Package encoding serializes property bags into compact, tamper-evident
// tokens suitable for an HTML attribute.
//
// Two modes are supported:
//   - Signed (default): base64 msgpack + HMAC signature - visible but tamper-proof
//   - Encrypted: AES-256-GCM - fully opaque
package encoding

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/pthm/hxmount/lib/props"
	"github.com/vmihailenco/msgpack/v5"
)

// Errors returned by Decode.
var (
	ErrInvalidFormat    = errors.New("encoding: invalid token format")
	ErrSignatureInvalid = errors.New("encoding: signature verification failed")
	ErrDecryptFailed    = errors.New("encoding: decryption failed")
)

// Encoder encodes and decodes property bags.
type Encoder struct {
	key []byte
	gcm cipher.AEAD
}

// NewEncoder creates a new encoder with the given key.
// Keys shorter than 32 bytes are stretched with SHA-256.
func NewEncoder(key []byte) (*Encoder, error) {
	if len(key) < 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}

	block, err := aes.NewCipher(key[:32])
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		key: key,
		gcm: gcm,
	}, nil
}

// Encode serializes p. The mount node is never included.
// If sensitive is true, the token is encrypted; otherwise it's signed.
func (e *Encoder) Encode(p props.Props, sensitive bool) (string, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(map[string]any(p.Without(props.MountNodeKey))); err != nil {
		return "", fmt.Errorf("encoding: marshal props: %w", err)
	}

	if sensitive {
		return e.encrypt(buf.Bytes())
	}
	return e.sign(buf.Bytes()), nil
}

// Decode reverses Encode. sensitive must match the mode used to encode.
func (e *Encoder) Decode(token string, sensitive bool) (props.Props, error) {
	var packed []byte
	var err error

	if sensitive {
		packed, err = e.decrypt(token)
	} else {
		packed, err = e.verify(token)
	}
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := msgpack.Unmarshal(packed, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return props.Props(data), nil
}

// sign creates a signed (but visible) encoding: base64.signature
func (e *Encoder) sign(data []byte) string {
	b64 := base64.RawURLEncoding.EncodeToString(data)
	mac := hmac.New(sha256.New, e.key)
	mac.Write(data)
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil)[:16])
	return b64 + "." + sig
}

func (e *Encoder) verify(token string) ([]byte, error) {
	data64, sig64, found := strings.Cut(token, ".")
	if !found {
		return nil, ErrInvalidFormat
	}

	data, err := base64.RawURLEncoding.DecodeString(data64)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	sig, err := base64.RawURLEncoding.DecodeString(sig64)
	if err != nil {
		return nil, ErrSignatureInvalid
	}

	mac := hmac.New(sha256.New, e.key)
	mac.Write(data)
	if !hmac.Equal(sig, mac.Sum(nil)[:16]) {
		return nil, ErrSignatureInvalid
	}

	return data, nil
}

func (e *Encoder) encrypt(data []byte) (string, error) {
	nonce := make([]byte, e.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := e.gcm.Seal(nonce, nonce, data, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (e *Encoder) decrypt(token string) ([]byte, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	if len(sealed) < e.gcm.NonceSize() {
		return nil, ErrInvalidFormat
	}

	nonce := sealed[:e.gcm.NonceSize()]
	plain, err := e.gcm.Open(nil, nonce, sealed[e.gcm.NonceSize():], nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plain, nil
}
