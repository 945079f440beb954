// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/archdocs/internal/diagram"
	"github.com/leapstack-labs/archdocs/internal/diagram/codec"
	"github.com/leapstack-labs/archdocs/internal/testutil"
	"github.com/leapstack-labs/archdocs/internal/ui/features/common"
	"github.com/leapstack-labs/archdocs/internal/ui/notifier"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Source       *common.Source
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
}

// SetupTestFixture serves the given YAML diagrams, or the shared checkout
// diagram when none are passed.
func SetupTestFixture(t *testing.T, documents ...string) *TestFixture {
	t.Helper()

	if len(documents) == 0 {
		documents = []string{testutil.CheckoutYAML}
	}

	stores := make([]*diagram.Store, 0, len(documents))
	for _, doc := range documents {
		s, err := codec.Decode(strings.NewReader(doc), codec.FormatYAML)
		require.NoError(t, err)
		stores = append(stores, s)
	}
	catalog, err := diagram.NewCatalog(stores...)
	require.NoError(t, err)

	return &TestFixture{
		Source:       common.StaticSource(catalog),
		Notifier:     NewTestNotifier(),
		SessionStore: NewTestSessionStore(),
	}
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// RequestWithTimeout wraps a request with a context timeout.
func RequestWithTimeout(t *testing.T, r *http.Request, timeout time.Duration) *http.Request {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	t.Cleanup(cancel)
	return r.WithContext(ctx)
}

// NewTestNotifier creates a notifier for testing.
func NewTestNotifier() *notifier.Notifier {
	return notifier.New()
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}
