package notifier

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, sub *Subscription) Change {
	t.Helper()
	select {
	case c, ok := <-sub.C:
		require.True(t, ok, "subscription closed")
		return c
	case <-time.After(time.Second):
		t.Fatal("no change received")
		return Change{}
	}
}

func TestNotifier_SubscribeClose(t *testing.T) {
	n := New()

	sub := n.Subscribe()
	require.NotNil(t, sub)
	assert.Equal(t, 1, n.Len())

	sub.Close()
	assert.Equal(t, 0, n.Len())

	_, ok := <-sub.C
	assert.False(t, ok, "channel should be closed")

	// second close is a no-op
	sub.Close()
}

func TestNotifier_Broadcast(t *testing.T) {
	n := New()
	sub1 := n.Subscribe()
	sub2 := n.Subscribe()
	defer sub1.Close()
	defer sub2.Close()

	n.Broadcast(Change{Diagrams: []string{"live-flow"}})

	assert.Equal(t, []string{"live-flow"}, receive(t, sub1).Diagrams)
	assert.Equal(t, []string{"live-flow"}, receive(t, sub2).Diagrams)
}

func TestNotifier_BroadcastWidensPendingChange(t *testing.T) {
	n := New()
	sub := n.Subscribe()
	defer sub.Close()

	n.Broadcast(Change{Diagrams: []string{"a"}})
	n.Broadcast(Change{Diagrams: []string{"b"}})

	c := receive(t, sub)
	assert.Empty(t, c.Diagrams)
	assert.True(t, c.Touches("a"))
	assert.True(t, c.Touches("b"))

	select {
	case <-sub.C:
		t.Fatal("only one pending change expected")
	default:
	}
}

func TestNotifier_BroadcastNoListeners(t *testing.T) {
	n := New()
	n.Broadcast(Change{})
	assert.Equal(t, 0, n.Len())
}

func TestChange_Touches(t *testing.T) {
	tests := []struct {
		name   string
		change Change
		id     string
		want   bool
	}{
		{"whole catalog", Change{}, "modules", true},
		{"listed", Change{Diagrams: []string{"modules", "live-flow"}}, "live-flow", true},
		{"not listed", Change{Diagrams: []string{"modules"}}, "live-flow", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.change.Touches(tt.id))
		})
	}
}

func TestNotifier_Concurrent(t *testing.T) {
	n := New()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := n.Subscribe()
			n.Broadcast(Change{})
			sub.Close()
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, n.Len())
}
