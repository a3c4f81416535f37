package filekit

import (
	"context"
	"io/fs"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultChunkSize is the buffer size used when streaming response bodies.
const DefaultChunkSize = 64 << 10

// Content-Disposition types accepted by WithDisposition.
const (
	DispositionAttachment = "attachment"
	DispositionInline     = "inline"
)

// config holds the settings shared by all response types.
type config struct {
	status      int
	mediaType   string
	filename    string
	disposition string
	header      http.Header
	chunkSize   int
	size        int64
	modTime     time.Time
	fileInfo    fs.FileInfo
	background  func(context.Context)
	onError     ErrorHandler
	limiter     *rate.Limiter
	noRanges    bool
}

func newConfig(opts []Option) config {
	c := config{
		status:      http.StatusOK,
		disposition: DispositionAttachment,
		chunkSize:   DefaultChunkSize,
		size:        -1,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Option configures a response.
type Option func(*config)

// WithStatus sets the response status code. Defaults to 200. Conditional
// and range handling only apply to 200 responses.
func WithStatus(status int) Option {
	return func(c *config) {
		c.status = status
	}
}

// WithMediaType sets the Content-Type explicitly, overriding the type
// guessed from the filename or path.
func WithMediaType(mediaType string) Option {
	return func(c *config) {
		c.mediaType = mediaType
	}
}

// WithFilename sets the download filename. It drives the
// Content-Disposition header and, unless WithMediaType is used, the
// Content-Type guess.
func WithFilename(name string) Option {
	return func(c *config) {
		c.filename = name
	}
}

// WithDisposition sets the Content-Disposition type. Defaults to
// DispositionAttachment.
func WithDisposition(dispType string) Option {
	return func(c *config) {
		c.disposition = dispType
	}
}

// WithInline marks the response for inline display instead of download.
func WithInline() Option {
	return WithDisposition(DispositionInline)
}

// WithHeader adds a response header. User headers win over computed ones.
func WithHeader(key, value string) Option {
	return func(c *config) {
		if c.header == nil {
			c.header = make(http.Header)
		}
		c.header.Add(key, value)
	}
}

// WithChunkSize sets the streaming buffer size. Values <= 0 are ignored.
func WithChunkSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.chunkSize = n
		}
	}
}

// WithSize overrides the size reported in Content-Length and used for the
// ETag, instead of the stat or content length.
func WithSize(n int64) Option {
	return func(c *config) {
		c.size = n
	}
}

// WithModTime overrides the modification time reported in Last-Modified
// and used for the ETag.
func WithModTime(t time.Time) Option {
	return func(c *config) {
		c.modTime = t
	}
}

// WithFileInfo supplies a pre-computed stat result to a FileResponse,
// skipping the serve-time os.Stat.
func WithFileInfo(info fs.FileInfo) Option {
	return func(c *config) {
		c.fileInfo = info
	}
}

// WithBackground registers a hook that runs after the response has been
// written. It runs for every completed serve, including HEAD, 304, and
// range responses, but not when the response fails before headers are sent.
func WithBackground(fn func(ctx context.Context)) Option {
	return func(c *config) {
		c.background = fn
	}
}

// WithErrorHandler overrides how serve-time errors (missing file, encode
// failure) are written. The default writes an RFC 9457 problem response.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *config) {
		c.onError = h
	}
}

// WithThrottle paces the body at bytesPerSec with the given burst. The
// limiter belongs to the response value: a response registered as a shared
// handler shares its bandwidth budget across requests. A burst <= 0
// defaults to DefaultChunkSize.
func WithThrottle(bytesPerSec float64, burst int) Option {
	return func(c *config) {
		if burst <= 0 {
			burst = DefaultChunkSize
		}
		c.limiter = rate.NewLimiter(rate.Limit(bytesPerSec), burst)
	}
}

// WithoutRanges disables byte-range handling for the response.
func WithoutRanges() Option {
	return func(c *config) {
		c.noRanges = true
	}
}
