package filekit

import (
	"errors"
	"fmt"
	"net/textproto"
	"strconv"
	"strings"
)

// byteRange is a half-open slice of the response body.
type byteRange struct {
	start, length int64
}

func (rg byteRange) contentRange(size int64) string {
	return fmt.Sprintf("bytes %d-%d/%d", rg.start, rg.start+rg.length-1, size)
}

// errNoOverlap reports a Range header whose ranges all lie past the end of
// the body. The response must be a 416.
var errNoOverlap = errors.New("ranges do not overlap body")

// errInvalidRange reports a Range header that should be ignored; the
// response falls back to the full body.
var errInvalidRange = errors.New("invalid range specifier")

// parseRange parses a Range header value against the body size.
func parseRange(spec string, size int64) ([]byteRange, error) {
	const prefix = "bytes="
	if !strings.HasPrefix(spec, prefix) {
		return nil, errInvalidRange
	}

	var (
		ranges    []byteRange
		noOverlap bool
	)
	for part := range strings.SplitSeq(spec[len(prefix):], ",") {
		part = textproto.TrimString(part)
		if part == "" {
			continue
		}
		startStr, endStr, ok := strings.Cut(part, "-")
		if !ok {
			return nil, errInvalidRange
		}
		startStr = textproto.TrimString(startStr)
		endStr = textproto.TrimString(endStr)

		if startStr == "" {
			// Suffix range: the final N bytes.
			n, err := strconv.ParseInt(endStr, 10, 64)
			if err != nil || n <= 0 {
				return nil, errInvalidRange
			}
			if n > size {
				n = size
			}
			if n == 0 {
				noOverlap = true
				continue
			}
			ranges = append(ranges, byteRange{start: size - n, length: n})
			continue
		}

		start, err := strconv.ParseInt(startStr, 10, 64)
		if err != nil || start < 0 {
			return nil, errInvalidRange
		}
		if start >= size {
			noOverlap = true
			continue
		}
		length := size - start
		if endStr != "" {
			end, err := strconv.ParseInt(endStr, 10, 64)
			if err != nil || end < start {
				return nil, errInvalidRange
			}
			if end >= size {
				end = size - 1
			}
			length = end - start + 1
		}
		ranges = append(ranges, byteRange{start: start, length: length})
	}

	if len(ranges) == 0 {
		if noOverlap {
			return nil, errNoOverlap
		}
		return nil, errInvalidRange
	}

	// Overlapping or abusive range sets are served as a full response.
	var total int64
	for _, rg := range ranges {
		total += rg.length
	}
	if total > size {
		return nil, errInvalidRange
	}
	return ranges, nil
}
