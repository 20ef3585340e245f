package hxmountecho

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/pthm/hxmount"
	"github.com/pthm/hxmount/lib/dom"
	"golang.org/x/net/html"
)

const page = `<html><body><div class="hello" data-name="Echo"></div><p class="plain">text</p></body></html>`

type hello struct{}

func (hello) Render(ctx context.Context, p hxmount.Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<b>hi "+templ.EscapeString(p["name"].(string))+"</b>")
		return err
	})
}

func restoreDefault(t *testing.T) {
	prev := hxmount.Default()
	t.Cleanup(func() { hxmount.SetDefault(prev) })
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestUse(t *testing.T) {
	restoreDefault(t)

	e := echo.New()
	reg := Use(e)
	if reg == nil {
		t.Fatal("Use returned nil registry")
	}
	reg.Register(".hello", hello{})

	e.GET("/", func(c echo.Context) error {
		return c.HTML(http.StatusOK, page)
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(rec.Body.String(), `<div class="hello" data-name="Echo"><b>hi Echo</b></div>`) {
		t.Errorf("component not mounted: %s", rec.Body.String())
	}
}

func TestUseSetsDefault(t *testing.T) {
	restoreDefault(t)

	reg := Use(echo.New())
	if hxmount.Default() != reg {
		t.Error("Use should install the registry as the default")
	}
}

func TestUseWithKey(t *testing.T) {
	restoreDefault(t)

	key := []byte("echo-test-key")
	e := echo.New()
	reg := Use(e, WithKey(key))
	var seen *html.Node
	reg.Register(".plain", hxmount.ConstructorFunc(func(node *html.Node, p hxmount.Props) (any, error) {
		seen = node
		return nil, nil
	}))

	e.GET("/", func(c echo.Context) error {
		return c.HTML(http.StatusOK, page)
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == nil {
		t.Fatal("constructor was not called")
	}
	if !strings.Contains(rec.Body.String(), `hx-props="`) {
		t.Fatalf("expected stamp in output: %s", rec.Body.String())
	}

	enc, _ := hxmount.NewEncoder(key)
	if _, err := hxmount.ReadStamp(enc, seen, false); err != nil {
		t.Errorf("ReadStamp failed: %v", err)
	}
}

func TestUseWithMountOptions(t *testing.T) {
	restoreDefault(t)

	e := echo.New()
	reg := Use(e, WithMountOptions(hxmount.WithoutFramework()))
	reg.Register(".hello", hello{})

	e.GET("/", func(c echo.Context) error {
		return c.HTML(http.StatusOK, page)
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/", nil))
	if strings.Contains(rec.Body.String(), "<b>hi") {
		t.Errorf("renderer should be skipped without a framework: %s", rec.Body.String())
	}
}

func TestUseGroup(t *testing.T) {
	restoreDefault(t)

	e := echo.New()
	g := e.Group("/app")
	reg := UseGroup(g)
	reg.Register(".hello", hello{})

	handler := func(c echo.Context) error {
		return c.HTML(http.StatusOK, page)
	}
	g.GET("/page", handler)
	e.GET("/outside", handler)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/app/page", nil))
	if !strings.Contains(rec.Body.String(), "<b>hi Echo</b>") {
		t.Errorf("group page not mounted: %s", rec.Body.String())
	}

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/outside", nil))
	if rec.Body.String() != page {
		t.Errorf("pages outside the group should pass through: %s", rec.Body.String())
	}
}

func TestHTMXPassthrough(t *testing.T) {
	restoreDefault(t)

	e := echo.New()
	reg := Use(e)
	reg.Register(".hello", hello{})

	fragment := `<div class="hello" data-name="Echo"></div>`
	e.GET("/frag", func(c echo.Context) error {
		return c.HTML(http.StatusOK, fragment)
	})

	req := httptest.NewRequest(http.MethodGet, "/frag", nil)
	req.Header.Set("HX-Request", "true")
	rec := serve(e, req)

	if rec.Body.String() != fragment {
		t.Errorf("HTMX fragments should pass through: %s", rec.Body.String())
	}
}

func TestRender(t *testing.T) {
	restoreDefault(t)

	e := echo.New()
	hxmount.SetDefault(hxmount.NewRegistry())
	hxmount.RegisterComponent(".hello", hello{})

	e.GET("/", func(c echo.Context) error {
		doc, err := dom.ParseString(page)
		if err != nil {
			return err
		}
		hxmount.MountAll(c.Request().Context(), doc)
		return Render(c, doc)
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("Content-Type") != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), "<b>hi Echo</b>") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
