package docs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/leapstack-labs/archdocs/internal/diagram"
	"github.com/leapstack-labs/archdocs/internal/diagram/codec"
	"github.com/leapstack-labs/archdocs/internal/ui/notifier"
	"github.com/starfederation/datastar-go/datastar"
	"golang.org/x/sync/errgroup"
)

// DefaultDebounce is how long the watcher waits for a burst of writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// LoadFunc produces the catalog the site is generated from.
type LoadFunc func() (*diagram.Catalog, error)

// DevConfig configures a DevServer.
type DevConfig struct {
	ProjectName string
	Load        LoadFunc
	// WatchDirs are watched for diagram file changes; empty disables watching
	WatchDirs []string
	Port      int
	Debounce  time.Duration
	Logger    *slog.Logger
}

// DevServer serves the docs site with live reload while diagrams are edited.
type DevServer struct {
	cfg      DevConfig
	logger   *slog.Logger
	notifier *notifier.Notifier

	mu      sync.RWMutex
	page    []byte
	catalog *Catalog
	lastErr error
}

// NewDevServer creates a dev server and performs the initial build.
func NewDevServer(cfg DevConfig) (*DevServer, error) {
	if cfg.Load == nil {
		return nil, errors.New("docs: dev server needs a catalog loader")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &DevServer{
		cfg:      cfg,
		logger:   logger,
		notifier: notifier.New(),
	}
	if err := s.rebuild(); err != nil {
		return nil, fmt.Errorf("initial build failed: %w", err)
	}
	return s, nil
}

// Handler returns the dev server routes.
func (s *DevServer) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/index.html", s.handleIndex)
	r.Get("/data/catalog.json", s.handleCatalog)
	r.Get("/__reload", s.handleReload)
	return r
}

// Reload rebuilds the site and tells connected browsers to refresh.
// A failed rebuild keeps serving the previous page.
func (s *DevServer) Reload() error {
	if err := s.rebuild(); err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return err
	}
	s.notifier.Broadcast(notifier.Change{})
	return nil
}

// LastError returns the error of the most recent failed rebuild, if the
// page has not been rebuilt successfully since.
func (s *DevServer) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Serve starts the server and blocks until ctx is cancelled.
func (s *DevServer) Serve(ctx context.Context) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Port),
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if len(s.cfg.WatchDirs) > 0 {
		eg.Go(func() error {
			return s.watch(egctx)
		})
	}

	eg.Go(func() error {
		s.logger.Info("docs dev server running", "addr", fmt.Sprintf("http://localhost:%d", s.cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down docs dev server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func (s *DevServer) rebuild() error {
	diagrams, err := s.cfg.Load()
	if err != nil {
		return fmt.Errorf("failed to load diagrams: %w", err)
	}

	catalog := NewGenerator(s.cfg.ProjectName, diagrams).GenerateCatalog()

	assets, err := BuildAssets(false)
	if err != nil {
		return fmt.Errorf("failed to build assets: %w", err)
	}

	page, err := renderPage(catalog, assets, true)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.page = page
	s.catalog = catalog
	s.lastErr = nil
	s.mu.Unlock()

	s.logger.Debug("docs rebuilt", "diagrams", len(catalog.Diagrams), "build_id", catalog.BuildID)
	return nil
}

func (s *DevServer) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	page := s.page
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	_, _ = w.Write(page)
}

func (s *DevServer) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	catalog := s.catalog
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	if err := writeJSON(w, catalog); err != nil {
		s.logger.Error("failed to write catalog", "error", err)
	}
}

// handleReload holds an SSE stream open and asks the page to reload after
// every successful rebuild.
func (s *DevServer) handleReload(w http.ResponseWriter, r *http.Request) {
	sub := s.notifier.Subscribe()
	defer sub.Close()

	sse := datastar.NewSSE(w, r)
	for {
		select {
		case <-r.Context().Done():
			return
		case _, ok := <-sub.C:
			if !ok {
				return
			}
			if err := sse.ExecuteScript("window.location.reload()"); err != nil {
				return
			}
		}
	}
}

func (s *DevServer) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range s.cfg.WatchDirs {
		if err := watchDirRecursive(watcher, dir); err != nil {
			s.logger.Error("failed to watch directory", "dir", dir, "error", err)
		} else {
			s.logger.Info("watching for diagram changes", "dir", dir)
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
			debounceTimer = time.AfterFunc(s.cfg.Debounce, func() {
				s.logger.Info("change detected", "file", filepath.Base(name))
				if err := s.Reload(); err != nil {
					s.logger.Error("rebuild failed", "error", err)
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

// watchDirRecursive adds dir and every non-hidden subdirectory to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && len(d.Name()) > 0 && d.Name()[0] == '.' {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
