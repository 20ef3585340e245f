package hxmount

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pthm/hxmount/lib/dom"
	"golang.org/x/net/html"
)

type mountNodeKey struct{}

// MountNode returns the element a Renderer is being rendered into, or nil
// outside a framework render.
func MountNode(ctx context.Context) *html.Node {
	n, _ := ctx.Value(mountNodeKey{}).(*html.Node)
	return n
}

// Rendered is the handle recorded for a Renderer mounted by TemplFramework.
type Rendered struct {
	Node  *html.Node
	Props Props
}

// TemplFramework renders templ components into mount elements.
//
// The component output is parsed in the element's context and replaces the
// element's children; the element's own attributes are left untouched. A
// failed render leaves the element as it was.
//
// Replacing children detaches any matched element nested inside a rendered
// one. When a selector matches both, the inner element is still rendered and
// recorded in the Result, but it is no longer part of the document.
type TemplFramework struct{}

// Render implements Framework.
func (TemplFramework) Render(ctx context.Context, c Renderer, node *html.Node, p Props) (any, error) {
	ctx = context.WithValue(ctx, mountNodeKey{}, node)

	out := c.Render(ctx, p)
	if out == nil {
		return nil, fmt.Errorf("%w: %s returned no component", ErrRenderFailed, componentName(c))
	}

	var buf bytes.Buffer
	if err := out.Render(ctx, &buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	nodes, err := dom.ParseFragment(&buf, node)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}
	dom.ReplaceChildren(node, nodes...)

	return &Rendered{Node: node, Props: p}, nil
}
