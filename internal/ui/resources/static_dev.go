//go:build dev

package resources

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
)

// Dev reports whether this binary was built with the dev tag.
func Dev() bool { return true }

// getStaticDir derives the absolute path to the static directory relative
// to this source file, regardless of where the binary is run from.
func getStaticDir() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return StaticDirectoryPath
	}
	// static_dev.go sits in internal/ui/resources/, static/ is a sibling.
	return filepath.Join(filepath.Dir(filename), "static")
}

// DiskDir returns the on-disk static directory. Dev builds serve and watch
// assets from here.
func DiskDir() (string, bool) {
	return getStaticDir(), true
}

// Handler returns an HTTP handler for serving static files. In dev mode,
// files are served directly from the filesystem for hot reloading.
func Handler() http.Handler {
	staticDir := getStaticDir()
	slog.Info("static assets served from filesystem", "path", staticDir)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Browser caching stays on validation (Last-Modified) so a normal
		// refresh picks up edited files.
		http.StripPrefix("/static/", http.FileServer(http.FS(os.DirFS(staticDir)))).ServeHTTP(w, r)
	})
}

// StaticPath returns the URL path for a static asset.
func StaticPath(path string) string {
	return "/static/" + path
}
