package hxmount

import (
	"bytes"
	"mime"
	"net/http"
	"strings"

	"github.com/pthm/hxmount/lib/dom"
)

// Middleware mounts the registry's components on HTML pages served by next.
//
// Successful (200) text/html responses to GET requests are buffered, parsed,
// passed through MountAll and re-rendered. Everything else, including HTMX
// partial requests, content-encoded (compressed) bodies and responses that
// fail to parse, is forwarded as written. Install compression outside this
// middleware so it sees the plain document.
//
//	reg := hxmount.NewRegistry()
//	reg.Register(".chart", Chart)
//	http.Handle("/", reg.Middleware(pages))
func (reg *Registry) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || IsHTMX(r) {
			next.ServeHTTP(w, r)
			return
		}

		buf := &bufferedResponse{header: make(http.Header)}
		next.ServeHTTP(buf, r)

		contentType := buf.header.Get("Content-Type")
		if contentType == "" {
			contentType = http.DetectContentType(buf.body.Bytes())
		}
		if buf.statusCode() != http.StatusOK || !isHTML(contentType) || isEncoded(buf.header) {
			buf.flush(w)
			return
		}

		doc, err := dom.Parse(bytes.NewReader(buf.body.Bytes()))
		if err != nil {
			reg.mounter.logger.Debug("hxmount: middleware passthrough", "path", r.URL.Path, "error", err)
			buf.flush(w)
			return
		}

		reg.MountAll(r.Context(), doc)

		copyHeader(w.Header(), buf.header)
		w.Header().Del("Content-Length")
		if err := WriteDocument(w, doc); err != nil {
			reg.mounter.logger.Debug("hxmount: write document", "path", r.URL.Path, "error", err)
		}
	})
}

// bufferedResponse captures a handler's response so it can be rewritten.
type bufferedResponse struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (b *bufferedResponse) Header() http.Header {
	return b.header
}

func (b *bufferedResponse) WriteHeader(code int) {
	if b.status == 0 {
		b.status = code
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedResponse) statusCode() int {
	if b.status == 0 {
		return http.StatusOK
	}
	return b.status
}

// flush replays the captured response unchanged.
func (b *bufferedResponse) flush(w http.ResponseWriter) {
	copyHeader(w.Header(), b.header)
	w.WriteHeader(b.statusCode())
	w.Write(b.body.Bytes())
}

func copyHeader(dst, src http.Header) {
	for k, vv := range src {
		dst[k] = append([]string(nil), vv...)
	}
}

func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "text/html"
}

// isEncoded reports whether the body carries a Content-Encoding other than
// identity.
func isEncoded(h http.Header) bool {
	for _, enc := range h.Values("Content-Encoding") {
		for _, part := range strings.Split(enc, ",") {
			part = strings.TrimSpace(part)
			if part != "" && !strings.EqualFold(part, "identity") {
				return true
			}
		}
	}
	return false
}
