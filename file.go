package filekit

import (
	"fmt"
	"net/http"
	"os"
)

// FileResponse serves a file from disk as a download. The file is stated
// and opened per request, so a FileResponse may be registered as a shared
// handler.
type FileResponse struct {
	path string
	cfg  config
}

// File builds a response that serves the file at path. The media type is
// guessed from the download filename (if set) or from the path extension.
func File(path string, opts ...Option) *FileResponse {
	return &FileResponse{path: path, cfg: newConfig(opts)}
}

// Path returns the file path the response serves.
func (f *FileResponse) Path() string { return f.path }

// ServeHTTP implements http.Handler.
func (f *FileResponse) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	info := f.cfg.fileInfo
	if info == nil {
		fi, err := os.Stat(f.path)
		if err != nil {
			f.cfg.fail(w, r, fmt.Errorf("stat %s: %w", f.path, err))
			return
		}
		info = fi
	}
	if !info.Mode().IsRegular() {
		f.cfg.fail(w, r, fmt.Errorf("%s: %w", f.path, ErrNotRegular))
		return
	}

	file, err := os.Open(f.path)
	if err != nil {
		f.cfg.fail(w, r, fmt.Errorf("open %s: %w", f.path, err))
		return
	}
	//nolint:errcheck // read-only descriptor
	defer file.Close()

	size := info.Size()
	if f.cfg.size >= 0 {
		size = f.cfg.size
	}
	modTime := info.ModTime()
	if !f.cfg.modTime.IsZero() {
		modTime = f.cfg.modTime
	}

	f.cfg.serve(w, r, size, modTime, f.cfg.resolveMediaType(f.path), file)
}
