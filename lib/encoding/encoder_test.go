package encoding

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pthm/hxmount/lib/props"
	"golang.org/x/net/html"
)

func testBag() props.Props {
	return props.Props{
		"title":  "test-file.txt",
		"count":  float64(12345),
		"flag":   true,
		"tags":   []any{"a", "b"},
		"config": map[string]any{"x": float64(1)},
		"none":   nil,
	}
}

func TestNewEncoder(t *testing.T) {
	// Should work with any key length (derives 32-byte key)
	_, err := NewEncoder([]byte("short"))
	if err != nil {
		t.Fatalf("NewEncoder with short key failed: %v", err)
	}

	_, err = NewEncoder([]byte("this-is-a-32-byte-key-for-aes!!!"))
	if err != nil {
		t.Fatalf("NewEncoder with 32-byte key failed: %v", err)
	}

	_, err = NewEncoder([]byte("this-key-is-longer-than-thirty-two-bytes"))
	if err != nil {
		t.Fatalf("NewEncoder with long key failed: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, sensitive := range []bool{false, true} {
		name := "signed"
		if sensitive {
			name = "encrypted"
		}
		t.Run(name, func(t *testing.T) {
			enc, err := NewEncoder([]byte("test-key"))
			if err != nil {
				t.Fatalf("NewEncoder failed: %v", err)
			}

			token, err := enc.Encode(testBag(), sensitive)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			decoded, err := enc.Decode(token, sensitive)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if !reflect.DeepEqual(decoded, testBag()) {
				t.Errorf("Decode = %#v, want %#v", decoded, testBag())
			}
		})
	}
}

func TestEncodeDropsMountNode(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	bag := props.Props{"a": "b", props.MountNodeKey: &html.Node{Type: html.ElementNode, Data: "div"}}
	token, err := enc.Encode(bag, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, err := enc.Decode(token, false)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if _, ok := decoded[props.MountNodeKey]; ok {
		t.Error("mount node should not be encoded")
	}
	if _, ok := bag[props.MountNodeKey]; !ok {
		t.Error("Encode should not modify its input")
	}
}

func TestSignedEncodingIsDeterministic(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	a, _ := enc.Encode(testBag(), false)
	b, _ := enc.Encode(testBag(), false)
	if a != b {
		t.Errorf("signed tokens differ: %s vs %s", a, b)
	}
}

func TestSignatureVerificationFailure(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	token, err := enc.Encode(testBag(), false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// Tamper with the signature
	tampered := token[:len(token)-2] + "XX"

	_, err = enc.Decode(tampered, false)
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("Expected ErrSignatureInvalid, got: %v", err)
	}
}

func TestDecryptionFailure(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	token, err := enc.Encode(testBag(), true)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	tampered := token[:len(token)-2] + "XX"

	_, err = enc.Decode(tampered, true)
	if err == nil {
		t.Error("Expected error for tampered ciphertext, got nil")
	}
}

func TestInvalidFormat(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	tests := []struct {
		name      string
		token     string
		sensitive bool
	}{
		{"missing separator", "invalidbase64withoutseparator", false},
		{"bad base64 payload", "!!!.AAAA", false},
		{"encrypted too short", "AAAA", true},
		{"encrypted bad base64", "!!!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := enc.Decode(tt.token, tt.sensitive)
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("Expected ErrInvalidFormat, got: %v", err)
			}
		})
	}
}

func TestDifferentKeysCannotDecode(t *testing.T) {
	enc1, _ := NewEncoder([]byte("key-one"))
	enc2, _ := NewEncoder([]byte("key-two"))

	token, err := enc1.Encode(testBag(), false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if _, err := enc2.Decode(token, false); err == nil {
		t.Error("Expected error when decoding with different key")
	}
}

func TestEmptyProps(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	token, err := enc.Encode(props.Props{}, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, err := enc.Decode(token, false)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded == nil || len(decoded) != 0 {
		t.Errorf("Empty props not decoded correctly: %v", decoded)
	}
}
