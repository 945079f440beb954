package diagrams

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/archdocs/internal/diagram"
	"github.com/leapstack-labs/archdocs/internal/ui/features/common"
	"github.com/leapstack-labs/archdocs/internal/ui/notifier"
	"github.com/leapstack-labs/archdocs/pkg/flowgraph"
	"github.com/starfederation/datastar-go/datastar"
)

// Handlers provides HTTP handlers for the diagrams feature.
type Handlers struct {
	source       *common.Source
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	viewers      *common.Viewers
	isDev        bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(source *common.Source, sessionStore sessions.Store, notify *notifier.Notifier, isDev bool) *Handlers {
	return &Handlers{
		source:       source,
		sessionStore: sessionStore,
		notifier:     notify,
		viewers:      common.NewViewers(),
		isDev:        isDev,
	}
}

// IndexPage lists every diagram.
func (h *Handlers) IndexPage(w http.ResponseWriter, r *http.Request) {
	if err := IndexPage(h.isDev, h.summaries()).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// DiagramPage renders a diagram with the selection from the query string,
// falling back to the one stored in the session.
func (h *Handlers) DiagramPage(w http.ResponseWriter, r *http.Request) {
	store, ok := h.lookup(w, r)
	if !ok {
		return
	}

	session := common.LoadSession(h.sessionStore, r)
	sel := session.Selection(store.ID())
	if r.URL.Query().Has("flow") {
		sel = flowgraph.ParseSelection(r.URL.Query().Get("flow"))
		session.SetSelection(store.ID(), sel)
	}
	h.viewers.Set(session.Viewer(), store.ID(), sel)
	if err := session.Save(r, w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := DiagramPage(h.isDev, buildView(store, sel)).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// SelectFlow stores the chosen flow and patches the diagram fragment.
// An empty or "all" flow resets the view.
func (h *Handlers) SelectFlow(w http.ResponseWriter, r *http.Request) {
	store, ok := h.lookup(w, r)
	if !ok {
		return
	}

	sel := flowgraph.ParseSelection(r.URL.Query().Get("flow"))

	session := common.LoadSession(h.sessionStore, r)
	session.SetSelection(store.ID(), sel)
	h.viewers.Set(session.Viewer(), store.ID(), sel)
	if err := session.Save(r, w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(DiagramFragment(buildView(store, sel))); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// DiagramUpdates is the long-lived SSE endpoint of a diagram page.
// It sends nothing up front; the page is already rendered. Each reload
// that touches the diagram re-patches the fragment with the viewer's
// current selection.
func (h *Handlers) DiagramUpdates(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	session := common.LoadSession(h.sessionStore, r)
	viewer := session.Viewer()
	release := h.viewers.Watch(viewer, id, session.Selection(id))
	defer release()

	sub := h.notifier.Subscribe()
	defer sub.Close()

	sse := datastar.NewSSE(w, r)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-sub.C:
			if !ok {
				return
			}
			if !change.Touches(id) {
				continue
			}
			store, err := h.source.Get(id)
			if err != nil {
				_ = sse.ConsoleError(err)
				continue
			}
			sel, _ := h.viewers.Get(viewer, id)
			if err := sse.PatchElementTempl(DiagramFragment(buildView(store, sel))); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// ListJSON returns every diagram summary.
func (h *Handlers) ListJSON(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.summaries())
}

// DiagramJSON returns the diagram filtered by ?flow=; omitted or "all"
// returns it unfiltered.
func (h *Handlers) DiagramJSON(w http.ResponseWriter, r *http.Request) {
	store, err := h.source.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	sel := flowgraph.ParseSelection(r.URL.Query().Get("flow"))
	writeJSON(w, http.StatusOK, buildView(store, sel))
}

func (h *Handlers) summaries() []DiagramSummary {
	stores := h.source.Catalog().List()
	out := make([]DiagramSummary, 0, len(stores))
	for _, s := range stores {
		out = append(out, summarize(s))
	}
	return out
}

func (h *Handlers) lookup(w http.ResponseWriter, r *http.Request) (*diagram.Store, bool) {
	store, err := h.source.Get(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return nil, false
	}
	return store, true
}

func statusFor(err error) int {
	if errors.Is(err, diagram.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
