package filekit

import (
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// etagMatch reports whether the comma-separated header value matches the
// entity tag. Weak prefixes are ignored on both sides.
func etagMatch(headerVal, etag string) bool {
	if etag == "" {
		return false
	}
	if headerVal == "*" {
		return true
	}
	target := strings.TrimPrefix(etag, "W/")
	for part := range strings.SplitSeq(headerVal, ",") {
		candidate := strings.TrimPrefix(textproto.TrimString(part), "W/")
		if candidate != "" && candidate == target {
			return true
		}
	}
	return false
}

// notModified evaluates If-None-Match and If-Modified-Since against the
// response validators. If-None-Match takes precedence when present.
func notModified(r *http.Request, etag string, modTime time.Time) bool {
	if inm := r.Header.Get("If-None-Match"); inm != "" {
		return etagMatch(inm, etag)
	}
	if ims := r.Header.Get("If-Modified-Since"); ims != "" && !modTime.IsZero() {
		t, err := http.ParseTime(ims)
		if err == nil && !modTime.Truncate(time.Second).After(t) {
			return true
		}
	}
	return false
}

// rangeApplies evaluates If-Range. A mismatched validator means the Range
// header must be ignored and the full body served.
func rangeApplies(r *http.Request, etag string, modTime time.Time) bool {
	ir := textproto.TrimString(r.Header.Get("If-Range"))
	if ir == "" {
		return true
	}
	if strings.HasPrefix(ir, `"`) || strings.HasPrefix(ir, "W/") {
		// Only a strong validator can guard a range request.
		return !strings.HasPrefix(ir, "W/") && ir == etag
	}
	t, err := http.ParseTime(ir)
	return err == nil && !modTime.IsZero() && modTime.Truncate(time.Second).Equal(t)
}
