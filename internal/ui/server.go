// Package ui serves the embedded web admin over a live connection to a
// Dolt SQL server.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/doltctl/internal/dolt"
	"github.com/leapstack-labs/doltctl/internal/ui/notifier"
	"github.com/leapstack-labs/doltctl/internal/ui/resources"
	"github.com/leapstack-labs/doltctl/internal/ui/router"
)

// Server is the admin UI server.
type Server struct {
	repo         *dolt.Repo
	database     string
	sessionStore *sessions.CookieStore
	host         string
	port         int
	watch        bool
	logger       *slog.Logger
	notifier     *notifier.Notifier
	reload       *notifier.Notifier
}

// Config holds configuration for the admin UI server.
type Config struct {
	Repo          *dolt.Repo
	Database      string
	Host          string
	Port          int
	Watch         bool
	SessionSecret string
	Logger        *slog.Logger
}

// NewServer creates a new admin UI server instance. Session cookies are
// signed with cfg.SessionSecret and live for 30 days.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	return &Server{
		repo:         cfg.Repo,
		database:     cfg.Database,
		sessionStore: sessionStore,
		host:         cfg.Host,
		port:         cfg.Port,
		watch:        cfg.Watch,
		logger:       cfg.Logger,
		notifier:     notifier.New(),
		reload:       notifier.New(),
	}
}

// Serve starts the admin UI server and blocks until the context is
// cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	s.logger.Info("starting admin server", "addr", fmt.Sprintf("http://%s", addr))

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, s.repo, s.database, s.sessionStore, s.notifier, s.reload, s.IsDev()); err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Poll the repo for outside changes if enabled
	if s.watch {
		eg.Go(func() error {
			return s.watchHead(egctx)
		})
	}

	// Reload browsers on asset edits in dev builds
	if dir, ok := resources.DiskDir(); ok {
		eg.Go(func() error {
			return s.watchAssets(egctx, dir)
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down admin server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// IsDev returns true if this binary was built with the dev tag.
func (s *Server) IsDev() bool {
	return resources.Dev()
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchHead polls the commit head and working set, broadcasting when
// either moves. The engine is shared with every SQL client, so changes
// land from outside this process and only polling can see them.
func (s *Server) watchHead(ctx context.Context) error {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	last, err := s.fingerprint(ctx)
	if err != nil {
		s.logger.Debug("head watch initial read failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:
			current, err := s.fingerprint(ctx)
			if err != nil {
				s.logger.Debug("head watch read failed", "error", err)
				continue
			}
			if current != last {
				last = current
				s.notifier.Broadcast()
			}
		}
	}
}

// fingerprint reduces the head commit and working set to a comparable
// string.
func (s *Server) fingerprint(ctx context.Context) (string, error) {
	var b strings.Builder

	commits, err := s.repo.Log(ctx, 1)
	if err != nil {
		return "", err
	}
	if len(commits) > 0 {
		b.WriteString(commits[0].Hash)
	}

	entries, err := s.repo.Status(ctx, true)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "|%s:%s:%t", e.TableName, e.Status, e.Staged)
	}

	return b.String(), nil
}

// watchAssets reloads connected browsers when files under the static
// directory change. Only dev builds have the directory on disk.
func (s *Server) watchAssets(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		s.logger.Error("failed to watch static directory", "error", err)
		// Don't fail - continue without watching
		return nil
	}

	// Debounce timer
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			ext := filepath.Ext(event.Name)
			if ext != ".css" && ext != ".js" {
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("static asset changed, reloading", "file", event.Name)
				s.reload.Broadcast()
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}
