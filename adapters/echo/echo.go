// Package hxmountecho provides Echo framework integration for hxmount.
//
// Mount registered components on every HTML page an Echo instance serves:
//
//	e := echo.New()
//	reg := hxmountecho.Use(e)
//	reg.Register(".chart", components.Chart)
//
// Or only on a group:
//
//	g := e.Group("/app", authMiddleware)
//	reg := hxmountecho.UseGroup(g)
//	reg.Register(".chart", components.Chart)
package hxmountecho

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/pthm/hxmount"
	"golang.org/x/net/html"
)

// Option configures the Use and UseGroup functions.
type Option func(*options)

type options struct {
	key       []byte
	sensitive bool
	mountOpts []hxmount.Option
}

// WithKey enables props stamping: each mounted element carries its props
// in the hx-props attribute, signed with key.
func WithKey(key []byte) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithSensitive encrypts stamps instead of signing them. It has no effect
// without WithKey.
func WithSensitive() Option {
	return func(o *options) {
		o.sensitive = true
	}
}

// WithMountOptions passes options through to the registry's Mounter.
func WithMountOptions(opts ...hxmount.Option) Option {
	return func(o *options) {
		o.mountOpts = append(o.mountOpts, opts...)
	}
}

// Use creates a registry, installs it as the hxmount default and mounts its
// components on every HTML page served by e.
//
//	e := echo.New()
//	reg := hxmountecho.Use(e)
//
//	// With options:
//	reg := hxmountecho.Use(e, hxmountecho.WithKey(key))
func Use(e *echo.Echo, opts ...Option) *hxmount.Registry {
	reg := newRegistry(opts)
	e.Use(Middleware(reg))
	return reg
}

// UseGroup is Use scoped to an Echo group, so mounting shares the group's
// middleware (auth, logging, etc.).
func UseGroup(g *echo.Group, opts ...Option) *hxmount.Registry {
	reg := newRegistry(opts)
	g.Use(Middleware(reg))
	return reg
}

// Middleware adapts reg.Middleware to Echo.
func Middleware(reg *hxmount.Registry) echo.MiddlewareFunc {
	return echo.WrapMiddleware(reg.Middleware)
}

func newRegistry(opts []Option) *hxmount.Registry {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	mountOpts := o.mountOpts
	if o.key != nil {
		enc, err := hxmount.NewEncoder(o.key)
		if err != nil {
			panic(fmt.Sprintf("hxmountecho: failed to create encoder: %v", err))
		}
		mountOpts = append(mountOpts, hxmount.WithStamp(enc, o.sensitive))
	}

	reg := hxmount.NewRegistry(mountOpts...)
	hxmount.SetDefault(reg)
	return reg
}

// Render writes a document tree to the Echo response.
//
//	func handler(c echo.Context) error {
//	    doc, _ := dom.ParseString(page)
//	    hxmount.MountAll(c.Request().Context(), doc)
//	    return hxmountecho.Render(c, doc)
//	}
func Render(c echo.Context, root *html.Node) error {
	return hxmount.WriteDocument(c.Response(), root)
}
