package docs

import (
	"bufio"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leapstack-labs/archdocs/internal/diagram"
	"github.com/leapstack-labs/archdocs/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDevServer(t *testing.T, load LoadFunc) *DevServer {
	t.Helper()
	s, err := NewDevServer(DevConfig{
		ProjectName: "Dealer Platform",
		Load:        load,
		Logger:      testutil.NewTestLogger(t),
	})
	require.NoError(t, err)
	return s
}

func TestNewDevServer_RequiresLoader(t *testing.T) {
	_, err := NewDevServer(DevConfig{})
	assert.Error(t, err)
}

func TestNewDevServer_InitialBuildError(t *testing.T) {
	_, err := NewDevServer(DevConfig{
		Load: func() (*diagram.Catalog, error) { return nil, errors.New("boom") },
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "initial build failed")
	assert.Contains(t, err.Error(), "boom")
}

func TestDevServer_Index(t *testing.T) {
	s := newTestDevServer(t, func() (*diagram.Catalog, error) { return checkoutCatalog(t), nil })

	for _, path := range []string{"/", "/index.html"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, rec.Body.String(), "@get('/__reload')")
			assert.Contains(t, rec.Body.String(), `"checkout"`)
		})
	}
}

func TestDevServer_Catalog(t *testing.T) {
	s := newTestDevServer(t, func() (*diagram.Catalog, error) { return checkoutCatalog(t), nil })

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/data/catalog.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var catalog Catalog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalog))
	assert.Equal(t, "Dealer Platform", catalog.ProjectName)
	require.Len(t, catalog.Diagrams, 1)
}

func TestDevServer_NotFound(t *testing.T) {
	s := newTestDevServer(t, func() (*diagram.Catalog, error) { return checkoutCatalog(t), nil })

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDevServer_ReloadKeepsLastGoodPage(t *testing.T) {
	var fail atomic.Bool
	s := newTestDevServer(t, func() (*diagram.Catalog, error) {
		if fail.Load() {
			return nil, errors.New("bad yaml")
		}
		return checkoutCatalog(t), nil
	})

	fail.Store(true)
	require.Error(t, s.Reload())
	assert.Error(t, s.LastError())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"checkout"`)

	fail.Store(false)
	require.NoError(t, s.Reload())
	assert.NoError(t, s.LastError())
}

func TestDevServer_ReloadStream(t *testing.T) {
	s := newTestDevServer(t, func() (*diagram.Catalog, error) { return checkoutCatalog(t), nil })
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/__reload") //nolint:noctx // test
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	require.Eventually(t, func() bool { return s.notifier.Len() == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, s.Reload())

	found := make(chan bool, 1)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			if strings.Contains(scanner.Text(), "window.location.reload()") {
				found <- true
				return
			}
		}
		found <- false
	}()

	select {
	case ok := <-found:
		assert.True(t, ok, "reload script not received")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload event")
	}
}
