// Package notifier broadcasts catalog changes to live SSE connections.
package notifier

import "sync"

// Change describes what was reloaded. Listeners treat it as a hint and
// re-read the catalog; an empty Diagrams slice means the whole catalog.
type Change struct {
	Diagrams []string
}

// Touches reports whether the change may affect the given diagram.
func (c Change) Touches(id string) bool {
	if len(c.Diagrams) == 0 {
		return true
	}
	for _, d := range c.Diagrams {
		if d == id {
			return true
		}
	}
	return false
}

// Notifier fans a Change out to every subscriber.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan Change]struct{}
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan Change]struct{}),
	}
}

// Subscription is one listener. C receives at most one pending change.
type Subscription struct {
	C <-chan Change

	n    *Notifier
	ch   chan Change
	once sync.Once
}

// Subscribe registers a listener. The caller must Close it when done.
func (n *Notifier) Subscribe() *Subscription {
	ch := make(chan Change, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return &Subscription{C: ch, n: n, ch: ch}
}

// Close removes the listener and closes C. It is safe to call twice.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.n.mu.Lock()
		delete(s.n.listeners, s.ch)
		s.n.mu.Unlock()
		close(s.ch)
	})
}

// Broadcast delivers change to all listeners without blocking. A listener
// that still has an unread change gets it widened to the whole catalog.
func (n *Notifier) Broadcast(change Change) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners {
		select {
		case ch <- change:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- Change{}:
			default:
			}
		}
	}
}

// Len returns the number of live listeners.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}
