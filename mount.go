package hxmount

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/pthm/hxmount/lib/dom"
	"github.com/pthm/hxmount/lib/props"
	"golang.org/x/net/html"
)

// Option configures a Mounter. Registry constructors accept the same options
// and pass them to the Mounter they own.
type Option func(*Mounter)

// WithFramework sets the Framework used for Renderer components.
// Passing nil is equivalent to WithoutFramework.
func WithFramework(f Framework) Option {
	return func(m *Mounter) {
		m.framework = f
	}
}

// WithoutFramework disables framework rendering. Constructors still mount;
// Renderer components are skipped.
func WithoutFramework() Option {
	return WithFramework(nil)
}

// WithLogger sets the logger that receives debug records for skipped
// elements and swallowed parse or render failures.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mounter) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithStamp writes each successfully mounted element's props, minus the
// mount node, into its StampAttr attribute. Sensitive stamps are encrypted;
// others are signed.
func WithStamp(enc *Encoder, sensitive bool) Option {
	return func(m *Mounter) {
		m.stamp = enc
		m.sensitive = sensitive
	}
}

// Mounter instantiates components on elements matched by a selector.
//
// Mount never fails: an invalid selector, an unusable component, malformed
// JSON or a failing render each shrink the result instead of raising. The
// reasons are logged at debug level.
type Mounter struct {
	framework Framework
	logger    *slog.Logger
	stamp     *Encoder
	sensitive bool
}

// NewMounter creates a Mounter. By default it renders Renderer components
// with TemplFramework and logs to slog.Default().
func NewMounter(opts ...Option) *Mounter {
	m := &Mounter{
		framework: TemplFramework{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// HasFramework reports whether Renderer components can be mounted.
func (m *Mounter) HasFramework() bool {
	return m.framework != nil
}

// BuildProps returns the props a component mounted on node receives:
// defaults, overlaid by the props derived from node, plus MountNodeKey.
func BuildProps(node *html.Node, defaults Props) Props {
	p := defaults.Clone().Merge(props.Build(node))
	p[MountNodeKey] = node
	return p
}

// Mount mounts component on every element under root matching selector,
// in document order.
//
// component must be a Renderer, a Constructor, or a
// func(*html.Node, Props) (any, error). Element-derived props win over
// defaults on collision.
func (m *Mounter) Mount(ctx context.Context, root *html.Node, selector string, component any, defaults Props) Result {
	log := m.logger.With("selector", selector, "component", componentName(component))

	renderer, constructor, err := classify(component)
	if err != nil {
		log.Debug("hxmount: skipping mount", "error", err)
		return Result{}
	}

	nodes, err := dom.QueryAll(root, selector)
	if err != nil {
		log.Debug("hxmount: skipping mount", "error", err)
		return Result{}
	}
	if len(nodes) == 0 {
		return Result{}
	}

	if renderer != nil && m.framework == nil {
		log.Debug("hxmount: skipping mount", "error", ErrFrameworkUnavailable)
		return Result{}
	}

	var handles []any
	for _, node := range nodes {
		if !dom.IsElement(node) {
			continue
		}

		p := BuildProps(node, defaults)
		token := m.encodeStamp(log, p)

		var handle any
		if renderer != nil {
			handle, err = m.framework.Render(ctx, renderer, node, p)
		} else {
			handle, err = constructor.Construct(node, p)
		}
		if err != nil {
			log.Debug("hxmount: element skipped", "tag", node.Data, "error", err)
			continue
		}

		if token != "" {
			dom.SetAttr(node, StampAttr, token)
		}
		handles = append(handles, handle)
	}

	return Result{handles: handles}
}

// encodeStamp returns the stamp token for p, or "" when stamping is off or
// fails.
func (m *Mounter) encodeStamp(log *slog.Logger, p Props) string {
	if m.stamp == nil {
		return ""
	}
	token, err := m.stamp.Encode(p, m.sensitive)
	if err != nil {
		log.Debug("hxmount: stamp skipped", "error", err)
		return ""
	}
	return token
}

// classify resolves component to exactly one of the two dispatch paths.
// Renderer takes precedence for values implementing both.
func classify(component any) (Renderer, Constructor, error) {
	if isNil(component) {
		return nil, nil, fmt.Errorf("%w: nil", ErrInvalidComponent)
	}
	switch c := component.(type) {
	case Renderer:
		return c, nil, nil
	case Constructor:
		return nil, c, nil
	case func(*html.Node, Props) (any, error):
		return nil, ConstructorFunc(c), nil
	}
	return nil, nil, fmt.Errorf("%w: %T", ErrInvalidComponent, component)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Interface, reflect.Slice, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func componentName(component any) string {
	if n, ok := component.(Named); ok && !isNil(component) {
		return n.Name()
	}
	return fmt.Sprintf("%T", component)
}
