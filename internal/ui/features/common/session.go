package common

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/archdocs/pkg/flowgraph"
)

// SessionName is the cookie that stores a browser's flow choices.
const SessionName = "archdocs"

const viewerKey = "viewer"

// Session remembers which flow a browser last selected per diagram.
type Session struct {
	session *sessions.Session
}

// LoadSession returns the browser's session. A cookie that no longer
// decodes (e.g. after a secret rotation) yields a fresh session.
func LoadSession(store sessions.Store, r *http.Request) *Session {
	s, _ := store.Get(r, SessionName)
	if s == nil {
		s = sessions.NewSession(store, SessionName)
		s.Options = &sessions.Options{Path: "/", HttpOnly: true}
		s.IsNew = true
	}
	return &Session{session: s}
}

// Viewer returns the browser's id, assigning one on first use.
func (s *Session) Viewer() string {
	if id, ok := s.session.Values[viewerKey].(string); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	s.session.Values[viewerKey] = id
	return id
}

// Selection returns the stored selection for a diagram, all flows if none.
func (s *Session) Selection(diagramID string) flowgraph.Selection {
	v, _ := s.session.Values[selectionKey(diagramID)].(string)
	return flowgraph.ParseSelection(v)
}

// SetSelection stores sel for a diagram.
func (s *Session) SetSelection(diagramID string, sel flowgraph.Selection) {
	s.session.Values[selectionKey(diagramID)] = sel.String()
}

// Save writes the session cookie. It must run before the response body.
func (s *Session) Save(r *http.Request, w http.ResponseWriter) error {
	return s.session.Save(r, w)
}

func selectionKey(diagramID string) string {
	return "flow:" + diagramID
}

// Viewers tracks the live selection of every open update stream, so a
// stream opened before a selection change renders the new choice. Entries
// exist only while at least one stream for the viewer and diagram is open;
// the session cookie carries the selection between streams.
type Viewers struct {
	mu      sync.RWMutex
	entries map[string]*viewerEntry
}

type viewerEntry struct {
	sel     flowgraph.Selection
	streams int
}

// NewViewers creates an empty registry.
func NewViewers() *Viewers {
	return &Viewers{entries: make(map[string]*viewerEntry)}
}

// Watch registers an open stream starting from sel, unless another stream
// already holds a newer selection. The returned release must be called
// when the stream ends; the last release drops the entry.
func (v *Viewers) Watch(viewer, diagramID string, sel flowgraph.Selection) (release func()) {
	key := viewerKeyFor(viewer, diagramID)

	v.mu.Lock()
	e, ok := v.entries[key]
	if !ok {
		e = &viewerEntry{sel: sel}
		v.entries[key] = e
	}
	e.streams++
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			e.streams--
			if e.streams == 0 {
				delete(v.entries, key)
			}
		})
	}
}

// Get returns the selection a watched viewer made on a diagram.
func (v *Viewers) Get(viewer, diagramID string) (flowgraph.Selection, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	e, ok := v.entries[viewerKeyFor(viewer, diagramID)]
	if !ok {
		return flowgraph.Selection{}, false
	}
	return e.sel, true
}

// Set records a viewer's selection on a diagram. It is a no-op when no
// stream is watching.
func (v *Viewers) Set(viewer, diagramID string, sel flowgraph.Selection) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if e, ok := v.entries[viewerKeyFor(viewer, diagramID)]; ok {
		e.sel = sel
	}
}

// Len returns the number of watched viewer and diagram pairs.
func (v *Viewers) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.entries)
}

func viewerKeyFor(viewer, diagramID string) string {
	return viewer + "/" + diagramID
}
