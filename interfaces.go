package hxmount

import (
	"context"

	"github.com/a-h/templ"
	"github.com/pthm/hxmount/lib/props"
	"golang.org/x/net/html"
)

// Props is the property bag handed to a component at mount time.
//
// Keys are camelCase names derived from data-* attributes and embedded JSON
// carriers; values are whatever JSON parsing yields, or the raw decoded
// string. The mount element itself is always present under MountNodeKey.
type Props = props.Props

// MountNodeKey is the property that references the mount element.
const MountNodeKey = props.MountNodeKey

// Renderer is the framework component type. Components implementing it are
// rendered into the mount element by the Mounter's Framework, replacing the
// element's children.
//
// Example:
//
//	type Greeting struct{}
//
//	func (Greeting) Render(ctx context.Context, p hxmount.Props) templ.Component {
//	    return greetingTemplate(p["name"])
//	}
//
// Render should be pure: it reads props and describes output. The mount
// element is available through MountNode(ctx) as well as props.
type Renderer interface {
	Render(ctx context.Context, p Props) templ.Component
}

// Constructor is the plain component type. Construct is called once per
// matched element with the element first and its props second; the returned
// value is recorded as the mount handle. Returning an error skips the
// element.
type Constructor interface {
	Construct(node *html.Node, p Props) (any, error)
}

// ConstructorFunc adapts a function to Constructor.
type ConstructorFunc func(node *html.Node, p Props) (any, error)

// Construct calls f(node, p).
func (f ConstructorFunc) Construct(node *html.Node, p Props) (any, error) {
	return f(node, p)
}

// Framework renders Renderer components into mount elements.
//
// The Mounter resolves its Framework once at construction. A Mounter without
// one still mounts Constructors but silently skips every Renderer.
type Framework interface {
	Render(ctx context.Context, c Renderer, node *html.Node, p Props) (any, error)
}

// Named is optionally implemented by components to label log records.
type Named interface {
	Name() string
}
