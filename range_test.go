package filekit_test

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/filekit"
	"github.com/bjaus/filekit/filetest"
)

func rangeFixture() *filekit.ContentResponse {
	return filekit.Bytes([]byte("0123456789abcdefghij"), "data.bin",
		filekit.WithMediaType("application/octet-stream"),
	)
}

func TestRange_single(t *testing.T) {
	t.Parallel()

	res := filetest.Do(t, rangeFixture(), http.MethodGet, http.Header{"Range": []string{"bytes=0-4"}})

	assert.Equal(t, http.StatusPartialContent, res.Status)
	assert.Equal(t, "01234", string(res.Body))
	assert.Equal(t, "bytes 0-4/20", res.Header.Get("Content-Range"))
	assert.Equal(t, "5", res.Header.Get("Content-Length"))
}

func TestRange_open_ended(t *testing.T) {
	t.Parallel()

	res := filetest.Do(t, rangeFixture(), http.MethodGet, http.Header{"Range": []string{"bytes=15-"}})

	assert.Equal(t, http.StatusPartialContent, res.Status)
	assert.Equal(t, "fghij", string(res.Body))
	assert.Equal(t, "bytes 15-19/20", res.Header.Get("Content-Range"))
}

func TestRange_suffix(t *testing.T) {
	t.Parallel()

	res := filetest.Do(t, rangeFixture(), http.MethodGet, http.Header{"Range": []string{"bytes=-4"}})

	assert.Equal(t, http.StatusPartialContent, res.Status)
	assert.Equal(t, "ghij", string(res.Body))
	assert.Equal(t, "bytes 16-19/20", res.Header.Get("Content-Range"))
}

func TestRange_multiple(t *testing.T) {
	t.Parallel()

	res := filetest.Do(t, rangeFixture(), http.MethodGet, http.Header{"Range": []string{"bytes=0-2,10-12"}})

	assert.Equal(t, http.StatusPartialContent, res.Status)

	mediaType, params, err := mime.ParseMediaType(res.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/byteranges", mediaType)

	mr := multipart.NewReader(bytes.NewReader(res.Body), params["boundary"])

	part, err := mr.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "bytes 0-2/20", part.Header.Get("Content-Range"))
	assert.Equal(t, "application/octet-stream", part.Header.Get("Content-Type"))
	data, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, "012", string(data))

	part, err = mr.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "bytes 10-12/20", part.Header.Get("Content-Range"))
	data, err = io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))

	_, err = mr.NextPart()
	assert.ErrorIs(t, err, io.EOF)
}

func TestRange_unsatisfiable(t *testing.T) {
	t.Parallel()

	res := filetest.Do(t, rangeFixture(), http.MethodGet, http.Header{"Range": []string{"bytes=99-"}})

	assert.Equal(t, http.StatusRequestedRangeNotSatisfiable, res.Status)
	assert.Equal(t, "bytes */20", res.Header.Get("Content-Range"))
	assert.Empty(t, res.Body)
}

func TestRange_malformed_serves_full(t *testing.T) {
	t.Parallel()

	res := filetest.Do(t, rangeFixture(), http.MethodGet, http.Header{"Range": []string{"bytes=5-2"}})

	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "0123456789abcdefghij", string(res.Body))
}

func TestRange_if_range_mismatch(t *testing.T) {
	t.Parallel()

	res := filetest.Do(t, rangeFixture(), http.MethodGet, http.Header{
		"Range":    []string{"bytes=0-4"},
		"If-Range": []string{`"deadbeef"`},
	})

	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "0123456789abcdefghij", string(res.Body))
}

func TestRange_if_range_match(t *testing.T) {
	t.Parallel()

	h := rangeFixture()
	first := filetest.Get(t, h)
	etag := first.Header.Get("ETag")
	require.NotEmpty(t, etag)

	res := filetest.Do(t, h, http.MethodGet, http.Header{
		"Range":    []string{"bytes=0-4"},
		"If-Range": []string{etag},
	})

	assert.Equal(t, http.StatusPartialContent, res.Status)
	assert.Equal(t, "01234", string(res.Body))
}

func TestRange_disabled(t *testing.T) {
	t.Parallel()

	h := filekit.Bytes([]byte("0123456789abcdefghij"), "data.bin",
		filekit.WithMediaType("application/octet-stream"),
		filekit.WithoutRanges(),
	)
	res := filetest.Do(t, h, http.MethodGet, http.Header{"Range": []string{"bytes=0-4"}})

	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "0123456789abcdefghij", string(res.Body))
	assert.Empty(t, res.Header.Get("Accept-Ranges"))
}

func TestRange_head_advertises_accept_ranges(t *testing.T) {
	t.Parallel()

	res := filetest.Head(t, rangeFixture())

	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "bytes", res.Header.Get("Accept-Ranges"))
}

func TestRange_on_file_response(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "data.bin", []byte("0123456789abcdefghij"))
	h := filekit.File(path, filekit.WithMediaType("application/octet-stream"))

	res := filetest.Do(t, h, http.MethodGet, http.Header{"Range": []string{"bytes=5-9"}})

	assert.Equal(t, http.StatusPartialContent, res.Status)
	assert.Equal(t, "56789", string(res.Body))
	assert.Equal(t, "bytes 5-9/20", res.Header.Get("Content-Range"))
}
