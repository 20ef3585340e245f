package hxmount

import (
	"context"
	"strings"
	"sync"

	"github.com/pthm/hxmount/lib/dom"
	"golang.org/x/net/html"
)

// TestResult holds the outcome of mounting a component against markup.
//
// Provides convenience methods for asserting on the rendered document, the
// handles produced and the props each element received.
type TestResult struct {
	// HTML is the whole document after mounting.
	HTML string
	// Root is the mounted document tree.
	Root *html.Node
	// Result is what Mount returned.
	Result Result
	// Props are the bags built for each matched element, in document order,
	// as they were before the component ran.
	Props []Props
}

// TestMount parses markup, mounts component on selector and returns the
// outcome. Use this for unit tests of components and markup contracts:
//
//	result, err := hxmount.TestMount(`<div class="chart" data-height="240"></div>`, ".chart", Chart, nil)
//	if !result.HTMLContains("<svg") {
//	    t.Fatal("chart not rendered")
//	}
func TestMount(markup, selector string, component any, defaults Props, opts ...Option) (*TestResult, error) {
	return TestMountWithContext(context.Background(), markup, selector, component, defaults, opts...)
}

// TestMountWithContext is TestMount with a caller-supplied context, for
// components that read request-scoped values.
func TestMountWithContext(ctx context.Context, markup, selector string, component any, defaults Props, opts ...Option) (*TestResult, error) {
	doc, err := dom.ParseString(markup)
	if err != nil {
		return nil, err
	}

	// Props are captured up front because a render replaces the element's
	// children, carriers included.
	nodes, _ := dom.QueryAll(doc, selector)
	var bags []Props
	for _, n := range nodes {
		if dom.IsElement(n) {
			bags = append(bags, BuildProps(n, defaults))
		}
	}

	res := NewMounter(opts...).Mount(ctx, doc, selector, component, defaults)

	return &TestResult{
		HTML:   dom.String(doc),
		Root:   doc,
		Result: res,
		Props:  bags,
	}, nil
}

// TestProps returns the props each element matching selector would receive,
// without mounting anything and without the mount node.
func TestProps(markup, selector string) ([]Props, error) {
	doc, err := dom.ParseString(markup)
	if err != nil {
		return nil, err
	}
	nodes, err := dom.QueryAll(doc, selector)
	if err != nil {
		return nil, err
	}
	var bags []Props
	for _, n := range nodes {
		if dom.IsElement(n) {
			bags = append(bags, BuildProps(n, nil).Without(MountNodeKey))
		}
	}
	return bags, nil
}

// HTMLContains checks if the document contains the given substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the document contains all given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// Count returns the number of mounted elements.
func (r *TestResult) Count() int {
	return r.Result.Len()
}

// PropsAt returns the props of the i-th matched element, or nil.
func (r *TestResult) PropsAt(i int) Props {
	if i < 0 || i >= len(r.Props) {
		return nil
	}
	return r.Props[i]
}

// MockCall records one Construct invocation.
type MockCall struct {
	Node  *html.Node
	Props Props
}

// MockConstructor is a Constructor that records every call.
//
// Handle, when set, produces the returned handle; otherwise the call itself
// is returned. Err, when set, fails every call.
//
//	mock := &hxmount.MockConstructor{}
//	hxmount.TestMount(markup, ".widget", mock, nil)
//	if len(mock.Calls()) != 2 { ... }
type MockConstructor struct {
	Handle func(node *html.Node, p Props) any
	Err    error

	mu    sync.Mutex
	calls []MockCall
}

// Construct implements Constructor.
func (m *MockConstructor) Construct(node *html.Node, p Props) (any, error) {
	m.mu.Lock()
	call := MockCall{Node: node, Props: p}
	m.calls = append(m.calls, call)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Handle != nil {
		return m.Handle(node, p), nil
	}
	return &call, nil
}

// Calls returns the recorded calls in order.
func (m *MockConstructor) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}
