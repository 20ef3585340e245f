package hxmount

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/pthm/hxmount/lib/props"
	"golang.org/x/net/html"
)

// Component[P] is a typed Renderer. The property bag is decoded into P
// before render is called, so templates work with a struct instead of a map.
//
// Example:
//
//	type ChartProps struct {
//	    Title  string
//	    Series []float64
//	    Height int `prop:"chartHeight"`
//	}
//
//	var Chart = hxmount.Func("chart", func(ctx context.Context, p ChartProps) templ.Component {
//	    return chartTemplate(p)
//	})
//
//	reg.Register(".chart", Chart)
//
// Fields match property names case-insensitively, or via a `prop` tag.
// String values are coerced to the field type, so data-height="240" fills
// an int. A bag that cannot be decoded fails the render, and the element
// is skipped.
type Component[P any] struct {
	name   string
	render func(ctx context.Context, p P) templ.Component
}

// Func creates a typed Renderer with the given name.
func Func[P any](name string, render func(ctx context.Context, p P) templ.Component) *Component[P] {
	return &Component[P]{name: name, render: render}
}

// Name returns the component's name.
func (c *Component[P]) Name() string {
	return c.name
}

// Render implements Renderer.
func (c *Component[P]) Render(ctx context.Context, p Props) templ.Component {
	var typed P
	if err := props.Decode(p, &typed); err != nil {
		return failedComponent(err)
	}
	return c.render(ctx, typed)
}

// Construct creates a typed Constructor. The bag is decoded into P and fn is
// called with the mount element and the decoded props.
func Construct[P any](fn func(node *html.Node, p P) (any, error)) Constructor {
	return ConstructorFunc(func(node *html.Node, p Props) (any, error) {
		var typed P
		if err := props.Decode(p, &typed); err != nil {
			return nil, err
		}
		return fn(node, typed)
	})
}

// failedComponent is a templ component whose render always fails with err.
func failedComponent(err error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return err
	})
}
