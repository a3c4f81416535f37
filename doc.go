// Package filekit provides file-download response types for net/http.
// Each response value implements http.Handler, so a handler builds one and
// delegates the rest of the request to it — headers, content-disposition,
// conditional requests, byte ranges, and chunked streaming are all handled
// by the response type.
//
// Serve a file from disk as an attachment:
//
//	mux.HandleFunc("GET /reports/{id}", func(w http.ResponseWriter, r *http.Request) {
//	    path := lookupReport(r.PathValue("id"))
//	    filekit.File(path, filekit.WithFilename("report.pdf")).ServeHTTP(w, r)
//	})
//
// Serve in-memory content the same way:
//
//	filekit.Bytes(data, "archive.zip")
//	filekit.Text(body, "notes.txt", filekit.WithInline())
//	filekit.JSON(result, "result.json")
//	filekit.YAML(cfg, "config.yaml")
//
// Responses are configured with functional options:
//
//	filekit.File(path,
//	    filekit.WithFilename("video.mp4"),
//	    filekit.WithThrottle(1<<20, 64<<10), // 1 MiB/s
//	    filekit.WithBackground(func(ctx context.Context) { audit(ctx, path) }),
//	)
//
// A response value is safe for concurrent use and may be registered directly
// as a handler. A throttle limiter belongs to the response value, so a shared
// value shares its bandwidth budget across requests.
//
// Routing, middleware, and connection handling stay with the host framework;
// anything that speaks http.Handler can serve these responses.
package filekit
