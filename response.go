package filekit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"time"
)

// serve writes the full response cycle: headers, preconditions, ranges,
// the HEAD short-circuit, the chunked body copy, and the background hook.
func (c *config) serve(w http.ResponseWriter, r *http.Request, size int64, modTime time.Time, mediaType string, src io.ReadSeeker) {
	h := w.Header()

	for key, values := range c.header {
		for _, v := range values {
			h.Add(key, v)
		}
	}

	if c.filename != "" {
		setIfAbsent(h, "Content-Disposition", contentDisposition(c.disposition, c.filename))
	}
	if mediaType != "" {
		setIfAbsent(h, "Content-Type", mediaType)
	}
	setStatHeaders(h, size, modTime)

	// Conditional and range handling evaluate whatever validators ended up
	// on the wire, so caller-provided ETag or Last-Modified headers win.
	etag := h.Get("ETag")
	lastMod, _ := http.ParseTime(h.Get("Last-Modified"))

	if c.status == http.StatusOK && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
		if notModified(r, etag, lastMod) {
			h.Del("Content-Type")
			h.Del("Content-Length")
			h.Del("Content-Disposition")
			w.WriteHeader(http.StatusNotModified)
			c.finish(r)
			return
		}
	}

	if !c.noRanges && c.status == http.StatusOK {
		setIfAbsent(h, "Accept-Ranges", "bytes")
		if spec := r.Header.Get("Range"); spec != "" && r.Method == http.MethodGet && rangeApplies(r, etag, lastMod) {
			ranges, err := parseRange(spec, size)
			switch {
			case errors.Is(err, errNoOverlap):
				h.Set("Content-Range", fmt.Sprintf("bytes */%d", size))
				h.Del("Content-Length")
				w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
				c.finish(r)
				return
			case err == nil && len(ranges) == 1:
				c.serveRange(w, r, ranges[0], size, src)
				return
			case err == nil:
				c.serveMultipart(w, r, ranges, size, mediaType, src)
				return
			}
			// Malformed Range headers fall through to a full response.
		}
	}

	w.WriteHeader(c.status)
	if r.Method == http.MethodHead {
		c.finish(r)
		return
	}

	//nolint:errcheck,gosec // best-effort after WriteHeader
	c.transmit(r.Context(), w, src)
	c.finish(r)
}

// serveRange writes a single-range 206 response.
func (c *config) serveRange(w http.ResponseWriter, r *http.Request, rg byteRange, size int64, src io.ReadSeeker) {
	h := w.Header()
	h.Set("Content-Range", rg.contentRange(size))
	h.Set("Content-Length", strconv.FormatInt(rg.length, 10))

	if _, err := src.Seek(rg.start, io.SeekStart); err != nil {
		c.fail(w, r, fmt.Errorf("seek range start: %w", err))
		return
	}

	w.WriteHeader(http.StatusPartialContent)
	//nolint:errcheck,gosec // best-effort after WriteHeader
	c.transmit(r.Context(), w, io.LimitReader(src, rg.length))
	c.finish(r)
}

// serveMultipart writes a multi-range 206 response as multipart/byteranges.
func (c *config) serveMultipart(w http.ResponseWriter, r *http.Request, ranges []byteRange, size int64, mediaType string, src io.ReadSeeker) {
	h := w.Header()
	mw := multipart.NewWriter(w)
	h.Set("Content-Type", "multipart/byteranges; boundary="+mw.Boundary())
	h.Del("Content-Length")
	w.WriteHeader(http.StatusPartialContent)

	for _, rg := range ranges {
		part := make(textproto.MIMEHeader)
		if mediaType != "" {
			part.Set("Content-Type", mediaType)
		}
		part.Set("Content-Range", rg.contentRange(size))

		pw, err := mw.CreatePart(part)
		if err != nil {
			break
		}
		if _, err := src.Seek(rg.start, io.SeekStart); err != nil {
			break
		}
		if err := c.transmit(r.Context(), pw, io.LimitReader(src, rg.length)); err != nil {
			break
		}
	}

	//nolint:errcheck,gosec // best-effort after WriteHeader
	mw.Close()
	c.finish(r)
}

// transmit copies the body in chunkSize slices, pacing through the
// throttle limiter when one is set. Both sides are wrapped so the copy
// cannot bypass the buffer via WriteTo or ReadFrom.
func (c *config) transmit(ctx context.Context, w io.Writer, src io.Reader) error {
	var dst io.Writer = struct{ io.Writer }{w}
	if c.limiter != nil {
		dst = &throttledWriter{ctx: ctx, w: w, limiter: c.limiter}
	}
	buf := make([]byte, c.chunkSize)
	_, err := io.CopyBuffer(dst, struct{ io.Reader }{src}, buf)
	return err
}

// finish runs the background hook after the response has been written.
func (c *config) finish(r *http.Request) {
	if c.background != nil {
		c.background(r.Context())
	}
}
