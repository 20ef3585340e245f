package hxmount

import (
	"net/http"

	"github.com/pthm/hxmount/lib/dom"
	"golang.org/x/net/html"
)

// WriteDocument writes a document tree to the HTTP response as HTML.
//
//	doc, _ := dom.ParseString(page)
//	reg.MountAll(r.Context(), doc)
//	hxmount.WriteDocument(w, doc)
func WriteDocument(w http.ResponseWriter, root *html.Node) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return dom.Render(w, root)
}

// IsHTMX returns true if the request originated from HTMX.
//
// HTMX requests usually expect fragments rather than full documents, so
// Middleware passes them through untouched.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
