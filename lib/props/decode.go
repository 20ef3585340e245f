package props

import (
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// ErrDecode is returned when a bag cannot be decoded into a typed struct.
var ErrDecode = errors.New("props: decode failed")

// Decode copies p into the struct pointed to by out. Fields are matched by
// their `prop` tag, or case-insensitively by name. String values are coerced
// to the field type where possible, so data-count="3" and data-count="\"3\""
// both fill an int field. The mount node is not decoded.
func Decode(p Props, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "prop",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := dec.Decode(map[string]any(p.Without(MountNodeKey))); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}
