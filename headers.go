package filekit

import (
	"crypto/md5" //nolint:gosec // content validator, not a security hash
	"encoding/hex"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// setIfAbsent sets a header only if the caller has not already set it.
func setIfAbsent(h http.Header, key, value string) {
	if h.Get(key) == "" {
		h.Set(key, value)
	}
}

// guessMediaType returns the media type for a file name's extension, or ""
// if unknown.
func guessMediaType(name string) string {
	return mime.TypeByExtension(filepath.Ext(name))
}

// resolveMediaType picks the Content-Type: explicit option first, then the
// filename's extension (falling back to text/plain), then the path's.
// Returns "" when nothing can be guessed, in which case the header is omitted.
func (c *config) resolveMediaType(path string) string {
	if c.mediaType != "" {
		return c.mediaType
	}
	if c.filename != "" {
		if mt := guessMediaType(c.filename); mt != "" {
			return mt
		}
		return "text/plain"
	}
	if path != "" {
		return guessMediaType(path)
	}
	return ""
}

// contentDisposition renders a Content-Disposition value. Filenames that
// survive percent-encoding unchanged use the plain quoted form; anything
// else uses the RFC 5987 extended form.
func contentDisposition(dispType, filename string) string {
	escaped := pctEncode(filename)
	if escaped != filename {
		return dispType + "; filename*=utf-8''" + escaped
	}
	return dispType + `; filename="` + filename + `"`
}

const upperhex = "0123456789ABCDEF"

func pctEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0xf])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
		c == '-' || c == '_' || c == '.' || c == '~' || c == '/'
}

// setStatHeaders fills in Content-Length, Last-Modified, and ETag from the
// body's size and modification time, keeping any caller-provided values.
func setStatHeaders(h http.Header, size int64, modTime time.Time) {
	setIfAbsent(h, "Content-Length", strconv.FormatInt(size, 10))
	if !modTime.IsZero() {
		setIfAbsent(h, "Last-Modified", modTime.UTC().Format(http.TimeFormat))
		setIfAbsent(h, "ETag", etagFor(size, modTime))
	}
}

// etagFor derives a strong validator from the modification time and size.
func etagFor(size int64, modTime time.Time) string {
	seed := strconv.FormatInt(modTime.UnixNano(), 10) + "-" + strconv.FormatInt(size, 10)
	sum := md5.Sum([]byte(seed)) //nolint:gosec // content validator, not a security hash
	return `"` + hex.EncodeToString(sum[:]) + `"`
}
