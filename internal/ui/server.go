// Package ui provides the interactive web UI for browsing diagrams by flow.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/archdocs/internal/diagram/codec"
	"github.com/leapstack-labs/archdocs/internal/ui/features/common"
	"github.com/leapstack-labs/archdocs/internal/ui/notifier"
	"github.com/leapstack-labs/archdocs/internal/ui/router"
	"golang.org/x/sync/errgroup"
)

// DefaultDebounce is the quiet period before a burst of file events reloads.
const DefaultDebounce = 100 * time.Millisecond

// Server is the main UI server.
type Server struct {
	source       *common.Source
	sessionStore *sessions.CookieStore
	port         int
	watch        bool
	watchDirs    []string
	debounce     time.Duration
	dev          bool
	logger       *slog.Logger
	notifier     *notifier.Notifier
}

// Config holds configuration for the UI server.
type Config struct {
	// Load reads the diagram catalog; it runs at start and on every reload
	Load          common.LoadFunc
	Port          int
	Watch         bool
	WatchDirs     []string
	Debounce      time.Duration
	SessionSecret string
	Dev           bool
	Logger        *slog.Logger
}

// NewServer creates a new UI server instance and loads the catalog.
func NewServer(cfg Config) (*Server, error) {
	if cfg.SessionSecret == "" {
		return nil, errors.New("ui: session secret is required")
	}
	source, err := common.NewSource(cfg.Load)
	if err != nil {
		return nil, fmt.Errorf("failed to load diagrams: %w", err)
	}

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Server{
		source:       source,
		sessionStore: sessionStore,
		port:         cfg.Port,
		watch:        cfg.Watch,
		watchDirs:    cfg.WatchDirs,
		debounce:     debounce,
		dev:          cfg.Dev,
		logger:       logger,
		notifier:     notifier.New(),
	}, nil
}

// Handler builds the router with middleware.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, s.source, s.sessionStore, s.notifier, s.dev); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting UI server", "addr", s.URL(), "diagrams", s.source.Catalog().Len())

	handler, err := s.Handler()
	if err != nil {
		return err
	}

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start file watcher if enabled
	if s.watch && len(s.watchDirs) > 0 {
		eg.Go(func() error {
			return s.watchFiles(egctx)
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// URL returns the local address the server listens on.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.port)
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// Reload re-reads the catalog and notifies the pages of changed diagrams.
// A failed reload keeps serving the previous catalog.
func (s *Server) Reload() error {
	changed, err := s.source.Reload()
	if err != nil {
		return err
	}
	if len(changed) == 0 {
		s.logger.Debug("diagrams reloaded, nothing changed")
		return nil
	}
	s.logger.Info("diagrams reloaded", "changed", changed)
	s.notifier.Broadcast(notifier.Change{Diagrams: changed})
	return nil
}

// watchFiles watches the diagram directories and reloads on change.
func (s *Server) watchFiles(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range s.watchDirs {
		if err := watchDirRecursive(watcher, dir); err != nil {
			// Don't fail - continue without watching
			s.logger.Error("failed to watch diagrams directory", "dir", dir, "error", err)
		}
	}

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !codec.IsDiagramFile(event.Name) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(s.debounce, func() {
				s.logger.Debug("file changed, reloading diagrams", "file", name)
				if err := s.Reload(); err != nil {
					s.logger.Error("reload failed", "error", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
