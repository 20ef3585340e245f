package hxmount

import (
	"context"
	"sync"

	"golang.org/x/net/html"
)

// Entry is a single (selector, component) registration.
type Entry struct {
	Selector  string
	Component any
}

// Registry maps selectors to components for deferred bulk mounting.
//
// Registering a selector again replaces its component but keeps its original
// position, so MountAll always runs in first-registration order. There is no
// way to unregister.
type Registry struct {
	mu         sync.RWMutex
	mounter    *Mounter
	order      []string
	components map[string]any
}

// NewRegistry creates an empty registry whose Mounter is configured by opts.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{
		mounter:    NewMounter(opts...),
		components: make(map[string]any),
	}
}

// Mounter returns the registry's mounter.
func (reg *Registry) Mounter() *Mounter {
	return reg.mounter
}

// Register associates component with selector. The last registration for a
// selector wins.
func (reg *Registry) Register(selector string, component any) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, exists := reg.components[selector]; !exists {
		reg.order = append(reg.order, selector)
	}
	reg.components[selector] = component
}

// Entries returns a snapshot of the registrations in mount order.
func (reg *Registry) Entries() []Entry {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	entries := make([]Entry, 0, len(reg.order))
	for _, sel := range reg.order {
		entries = append(entries, Entry{Selector: sel, Component: reg.components[sel]})
	}
	return entries
}

// Len returns the number of registered selectors.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.order)
}

// Mount mounts a single component with the registry's mounter.
func (reg *Registry) Mount(ctx context.Context, root *html.Node, selector string, component any, defaults Props) Result {
	return reg.mounter.Mount(ctx, root, selector, component, defaults)
}

// MountAll mounts every registered component against root in registration
// order. Individual results are discarded.
func (reg *Registry) MountAll(ctx context.Context, root *html.Node) {
	for _, e := range reg.Entries() {
		reg.mounter.Mount(ctx, root, e.Selector, e.Component, nil)
	}
}

var (
	defaultMu       sync.Mutex
	defaultRegistry *Registry
)

// Default returns the shared registry used by the package-level functions,
// creating it with default options on first use.
func Default() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultRegistry == nil {
		defaultRegistry = NewRegistry()
	}
	return defaultRegistry
}

// SetDefault replaces the shared registry.
func SetDefault(reg *Registry) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultRegistry = reg
}

// MountComponent mounts component on every element under root matching
// selector, using the default registry's mounter. defaults, if given, sit
// underneath each element's own props.
func MountComponent(ctx context.Context, root *html.Node, selector string, component any, defaults ...Props) Result {
	var d Props
	for _, p := range defaults {
		d = d.Merge(p)
	}
	return Default().Mount(ctx, root, selector, component, d)
}

// RegisterComponent registers component on the default registry.
func RegisterComponent(selector string, component any) {
	Default().Register(selector, component)
}

// MountAll mounts every component on the default registry.
func MountAll(ctx context.Context, root *html.Node) {
	Default().MountAll(ctx, root)
}
