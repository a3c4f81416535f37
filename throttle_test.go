package filekit_test

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bjaus/filekit"
	"github.com/bjaus/filekit/filetest"
)

func TestThrottle_preserves_content(t *testing.T) {
	t.Parallel()

	// Burst smaller than the chunk size forces the writer to split chunks.
	content := bytes.Repeat([]byte("0123456789abcdef"), 4<<10) // 64 KiB
	h := filekit.Bytes(content, "big.bin",
		filekit.WithMediaType("application/octet-stream"),
		filekit.WithThrottle(1<<30, 1<<10),
	)

	res := filetest.Get(t, h)

	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, content, res.Body)
}

func TestThrottle_paces_writes(t *testing.T) {
	t.Parallel()

	// 2 KiB at 4 KiB/s with a 512 B burst: at least (2048-512)/4096 ≈ 375ms.
	content := bytes.Repeat([]byte("x"), 2<<10)
	h := filekit.Bytes(content, "slow.bin",
		filekit.WithMediaType("application/octet-stream"),
		filekit.WithThrottle(4<<10, 512),
	)

	start := time.Now()
	res := filetest.Get(t, h)
	elapsed := time.Since(start)

	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, content, res.Body)
	assert.GreaterOrEqual(t, elapsed, 200*time.Millisecond)
}

func TestThrottle_with_small_chunks(t *testing.T) {
	t.Parallel()

	content := bytes.Repeat([]byte("abc"), 1000)
	h := filekit.Bytes(content, "chunked.bin",
		filekit.WithMediaType("application/octet-stream"),
		filekit.WithChunkSize(128),
		filekit.WithThrottle(1<<30, 64),
	)

	res := filetest.Get(t, h)

	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, content, res.Body)
}
