package filekit

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// throttledWriter paces writes through a rate.Limiter, charging one token
// per byte. Writes larger than the limiter's burst are split.
type throttledWriter struct {
	ctx     context.Context
	w       io.Writer
	limiter *rate.Limiter
}

func (t *throttledWriter) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		n := len(p)
		if burst := t.limiter.Burst(); n > burst {
			n = burst
		}
		if err := t.limiter.WaitN(t.ctx, n); err != nil {
			return written, err
		}
		m, err := t.w.Write(p[:n])
		written += m
		if err != nil {
			return written, err
		}
		p = p[n:]
	}
	return written, nil
}
