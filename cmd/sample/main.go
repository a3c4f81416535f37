// Command sample demonstrates the github.com/bjaus/filekit response types
// with a small download server.
//
// Run:
//
//	go run ./cmd/sample -dir /path/to/files
//
// Then explore:
//
//	GET http://localhost:8080/files/{name}   — download a file from -dir
//	GET http://localhost:8080/hello.txt      — text attachment
//	GET http://localhost:8080/readme         — inline text
//	GET http://localhost:8080/report.json    — JSON attachment
//	GET http://localhost:8080/report.yaml    — YAML attachment
//	GET http://localhost:8080/slow           — throttled download (16 KiB/s)
//
// Downloads support HEAD, If-None-Match / If-Modified-Since, and Range
// requests; try `curl -r 0-99` or replaying the ETag.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/bjaus/filekit"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dir := flag.String("dir", ".", "directory served under /files/")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("starting server", "addr", *addr, "dir", *dir)

	if err := run(ctx, *addr, newMux(*dir)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

func run(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func newMux(dir string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /files/{name}", func(w http.ResponseWriter, r *http.Request) {
		// Base strips any path separators a client sneaks into the segment.
		name := filepath.Base(r.PathValue("name"))
		filekit.File(filepath.Join(dir, name), filekit.WithFilename(name)).ServeHTTP(w, r)
	})

	mux.Handle("GET /hello.txt", filekit.Text("Hello from filekit!\n", "hello.txt"))

	mux.Handle("GET /readme", filekit.Text("filekit sample server\n", "readme.txt", filekit.WithInline()))

	mux.HandleFunc("GET /report.json", func(w http.ResponseWriter, r *http.Request) {
		filekit.JSON(report(), "report.json").ServeHTTP(w, r)
	})

	mux.HandleFunc("GET /report.yaml", func(w http.ResponseWriter, r *http.Request) {
		filekit.YAML(report(), "report.yaml", filekit.WithMediaType("application/yaml")).ServeHTTP(w, r)
	})

	mux.Handle("GET /slow", filekit.Bytes(
		bytes.Repeat([]byte("0123456789abcdef"), 4<<10),
		"slow.bin",
		filekit.WithMediaType("application/octet-stream"),
		filekit.WithThrottle(16<<10, 4<<10),
		filekit.WithBackground(func(ctx context.Context) {
			slog.InfoContext(ctx, "download finished", "name", "slow.bin")
		}),
	))

	return logRequests(mux)
}

func report() map[string]any {
	return map[string]any{
		"generated": time.Now().UTC().Format(time.RFC3339),
		"status":    "ok",
		"counts": map[string]int{
			"downloads": 42,
			"errors":    0,
		},
	}
}

// statusRecorder wraps http.ResponseWriter to capture the status code and size.
type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.size += n
	return n, err
}

// Unwrap returns the underlying ResponseWriter (supports http.ResponseController).
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"bytes", rec.size,
			"latency", time.Since(start),
		)
	})
}
