// Package hxmount mounts Go components on HTML elements matched by CSS
// selectors, deriving each component's props from the element's markup.
//
// # Markup Contract
//
// Any element matched by a selector may carry:
//
//   - data-<name> attributes. Values are URI-component decoded, then parsed
//     as JSON when possible; otherwise the decoded string is used. Names are
//     converted to camelCase: data-base-path becomes basePath.
//   - A <script type="application/json"> as the element itself or among its
//     direct children. Its data-name attribute (default "data") names the
//     property holding the parsed payload. Malformed payloads are dropped.
//
// Attributes win over embedded JSON, and both win over caller defaults. The
// element itself is always injected as props[MountNodeKey].
//
//	<div class="chart" data-height="240" data-title="Sales%20Q1">
//	    <script type="application/json" data-name="series">[3, 1, 4]</script>
//	</div>
//
// yields {height: 240, title: "Sales Q1", series: [3, 1, 4], mountNode: <div>}.
//
// # Components
//
// Two component kinds are dispatched:
//   - Renderer: Render(ctx, Props) templ.Component. The output replaces the
//     element's children. Func[P] decodes props into a typed struct first.
//   - Constructor: Construct(node, Props) (any, error). The element comes
//     first, props second. Construct[P] is the typed variant.
//
// Renderers need a Framework. The default is TemplFramework. A Mounter
// built WithoutFramework still mounts Constructors and skips Renderers.
//
// # Mounting
//
// Mount a component directly:
//
//	m := hxmount.NewMounter()
//	res := m.Mount(ctx, doc, ".chart", Chart, hxmount.Props{"height": 100})
//
// Or register components and mount them together:
//
//	reg := hxmount.NewRegistry()
//	reg.Register(".chart", Chart)
//	reg.Register(".map", NewMap)
//	reg.MountAll(ctx, doc)
//
// Re-registering a selector replaces its component. Package-level
// MountComponent, RegisterComponent and MountAll use a shared default
// registry (see SetDefault).
//
// Mounting never fails. An invalid selector, an unusable component,
// malformed JSON and a failing render each shrink the result instead. The
// reasons are logged at debug level through log/slog.
//
// # Serving Pages
//
// Registry.Middleware mounts registered components on every full HTML page a
// handler serves. With WithStamp, each mounted element also carries its
// signed or encrypted props in the hx-props attribute. A later request can
// recover them with ReadStamp.
package hxmount
