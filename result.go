package hxmount

// Result holds the handles produced by one Mount call, one per mounted
// element in document order.
//
// A Renderer mounted by TemplFramework yields a *Rendered; a Constructor
// yields whatever Construct returned. The zero Result is empty and is what
// Mount returns when nothing matched or the inputs were unusable.
//
//	res := m.Mount(ctx, doc, ".chart", chart, nil)
//	switch v := res.Value().(type) {
//	case nil:      // nothing mounted
//	case []any:    // several elements
//	default:       // exactly one
//	}
type Result struct {
	handles []any
}

// Len returns the number of mounted elements.
func (r Result) Len() int {
	return len(r.handles)
}

// Empty reports whether nothing was mounted.
func (r Result) Empty() bool {
	return len(r.handles) == 0
}

// Single returns the handle when exactly one element was mounted.
func (r Result) Single() (any, bool) {
	if len(r.handles) != 1 {
		return nil, false
	}
	return r.handles[0], true
}

// All returns a copy of every handle in document order.
func (r Result) All() []any {
	if len(r.handles) == 0 {
		return nil
	}
	out := make([]any, len(r.handles))
	copy(out, r.handles)
	return out
}

// Value returns nil when empty, the bare handle for a single mount, and
// []any otherwise.
func (r Result) Value() any {
	switch len(r.handles) {
	case 0:
		return nil
	case 1:
		return r.handles[0]
	}
	return r.All()
}
