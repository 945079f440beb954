// Package diagrams provides the diagram index, diagram pages and their
// flow selection endpoints.
package diagrams

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/archdocs/internal/ui/features/common"
	"github.com/leapstack-labs/archdocs/internal/ui/notifier"
)

// SetupRoutes configures routes for the diagrams feature.
func SetupRoutes(
	router chi.Router,
	source *common.Source,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	isDev bool,
) error {
	handlers := NewHandlers(source, sessionStore, notify, isDev)

	router.Get("/", handlers.IndexPage)
	router.Route("/diagrams/{id}", func(r chi.Router) {
		r.Get("/", handlers.DiagramPage)
		r.Post("/select", handlers.SelectFlow)
		r.Get("/updates", handlers.DiagramUpdates)
	})

	router.Route("/api/diagrams", func(r chi.Router) {
		r.Get("/", handlers.ListJSON)
		r.Get("/{id}", handlers.DiagramJSON)
	})

	return nil
}
