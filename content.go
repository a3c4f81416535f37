package filekit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gopkg.in/yaml.v3"
)

// ContentResponse serves in-memory content as a download. The zero value
// is not usable; build one with Bytes, Text, JSON, or YAML.
type ContentResponse struct {
	content []byte
	created time.Time
	err     error
	cfg     config
}

// Bytes builds a response that serves content under the given download
// filename. Content-Length defaults to len(content) and Last-Modified to
// the construction time; both can be overridden with options.
func Bytes(content []byte, filename string, opts ...Option) *ContentResponse {
	opts = append([]Option{WithFilename(filename)}, opts...)
	return &ContentResponse{
		content: content,
		created: time.Now(),
		cfg:     newConfig(opts),
	}
}

// Text builds a response that serves a UTF-8 string under the given
// download filename.
func Text(content string, filename string, opts ...Option) *ContentResponse {
	return Bytes([]byte(content), filename, opts...)
}

// JSON builds a response that serves v marshaled as JSON. A marshal
// failure is reported at serve time through the error handler.
func JSON(v any, filename string, opts ...Option) *ContentResponse {
	data, err := json.Marshal(v)
	resp := Bytes(data, filename, opts...)
	if err != nil {
		resp.err = fmt.Errorf("marshal json: %w", err)
	}
	return resp
}

// YAML builds a response that serves v marshaled as YAML. A marshal
// failure is reported at serve time through the error handler.
func YAML(v any, filename string, opts ...Option) *ContentResponse {
	data, err := yaml.Marshal(v)
	resp := Bytes(data, filename, opts...)
	if err != nil {
		resp.err = fmt.Errorf("marshal yaml: %w", err)
	}
	return resp
}

// Len returns the content length in bytes.
func (cr *ContentResponse) Len() int { return len(cr.content) }

// ServeHTTP implements http.Handler.
func (cr *ContentResponse) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if cr.err != nil {
		cr.cfg.fail(w, r, cr.err)
		return
	}

	size := cr.cfg.size
	if size < 0 {
		size = int64(len(cr.content))
	}
	modTime := cr.cfg.modTime
	if modTime.IsZero() {
		modTime = cr.created
	}

	cr.cfg.serve(w, r, size, modTime, cr.cfg.resolveMediaType(""), bytes.NewReader(cr.content))
}
