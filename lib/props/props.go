// Package props derives component properties from HTML elements.
//
// A property bag is built from two sources on the mount element:
//
//   - Embedded JSON carriers: a <script type="application/json"> that is the
//     element itself or one of its direct children. The carrier's data-name
//     attribute (default "data") names the property.
//   - data-* attributes: each value is URI-component decoded and parsed as
//     JSON when possible, otherwise kept as the decoded string.
//
// Attribute-derived keys overwrite carrier-derived keys. Malformed JSON never
// produces an error; it narrows the bag instead.
package props

import (
	"encoding/json"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
	"github.com/pthm/hxmount/lib/dom"
	"golang.org/x/net/html"
)

// MountNodeKey is the property under which the mount element is injected.
const MountNodeKey = "mountNode"

// DefaultJSONKey names a carrier's property when it has no data-name.
const DefaultJSONKey = "data"

// JSONType is the declared type of an embedded data carrier.
const JSONType = "application/json"

var dataAttr = regexp.MustCompile(`(?i)^data-([\w-]+)`)

// Props is a property bag: camelCase names to JSON-shaped values
// (string, float64, bool, nil, map[string]any, []any) or the mount node.
type Props map[string]any

// Merge copies every key of other into p, overwriting on collision, and
// returns p. A nil p is allocated.
func (p Props) Merge(other Props) Props {
	if p == nil {
		p = make(Props, len(other))
	}
	for k, v := range other {
		p[k] = v
	}
	return p
}

// Clone returns a shallow copy of p.
func (p Props) Clone() Props {
	return make(Props, len(p)).Merge(p)
}

// Without returns a shallow copy of p minus the given keys.
func (p Props) Without(keys ...string) Props {
	out := p.Clone()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Keys returns the property names in sorted order.
func (p Props) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CamelCase converts kebab-case and snake_case names to lower camelCase.
func CamelCase(s string) string {
	return strcase.ToLowerCamel(s)
}

// Value is the outcome of an attempted JSON parse. JSON reports whether
// Raw was valid JSON; when it was, Parsed holds the decoded value.
type Value struct {
	Raw    string
	Parsed any
	JSON   bool
}

// Get returns the parsed value when parsing succeeded, else the raw string.
func (v Value) Get() any {
	if v.JSON {
		return v.Parsed
	}
	return v.Raw
}

// ParseValue attempts to parse s as JSON.
func ParseValue(s string) Value {
	var parsed any
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return Value{Raw: s}
	}
	return Value{Raw: s, Parsed: parsed, JSON: true}
}

// IsCarrier reports whether n embeds a JSON payload.
func IsCarrier(n *html.Node) bool {
	return dom.IsTag(n, "script") && dom.Attr(n, "type", "") == JSONType
}

// LoadJSON extracts the payload of a data carrier as a single-key bag.
//
// ok is false when n is not a carrier. A carrier whose content is not valid
// JSON yields an empty bag with ok set.
func LoadJSON(n *html.Node) (p Props, ok bool) {
	if !IsCarrier(n) {
		return nil, false
	}
	key := CamelCase(dom.Attr(n, "data-name", DefaultJSONKey))

	v := ParseValue(dom.Text(n))
	if !v.JSON {
		return Props{}, true
	}
	return Props{key: v.Parsed}, true
}

// Build returns the property bag of n: carrier JSON from n itself or,
// failing that, from its direct children, overlaid with its data-*
// attributes. Attributes are applied in document order, so the last of two
// colliding names wins. Build only reads n.
func Build(n *html.Node) Props {
	result := Props{}
	if !dom.IsElement(n) {
		return result
	}

	if own, ok := LoadJSON(n); ok {
		result.Merge(own)
	} else {
		for _, child := range dom.Children(n) {
			if p, ok := LoadJSON(child); ok {
				result.Merge(p)
			}
		}
	}

	// A repeated attribute name keeps its first value, as in a browser DOM.
	seen := make(map[string]bool, len(n.Attr))
	for _, a := range n.Attr {
		if a.Namespace != "" {
			continue
		}
		key := strings.ToLower(a.Key)
		if seen[key] {
			continue
		}
		seen[key] = true

		m := dataAttr.FindStringSubmatch(a.Key)
		if m == nil {
			continue
		}
		name := strings.TrimLeft(m[1], "-_")
		if name == "" {
			continue
		}
		result[CamelCase(name)] = ParseValue(decodeComponent(a.Val)).Get()
	}

	return result
}

// decodeComponent URI-component decodes s. Malformed escapes, including
// ones that decode to invalid UTF-8, leave s as is.
func decodeComponent(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil || !utf8.ValidString(decoded) {
		return s
	}
	return decoded
}
