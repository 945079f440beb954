// Package tui is a terminal explorer that highlights one flow at a time.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/archdocs/internal/diagram"
	"github.com/leapstack-labs/archdocs/internal/docs"
	"github.com/leapstack-labs/archdocs/internal/selection"
	"github.com/leapstack-labs/archdocs/pkg/flowgraph"
)

// ErrNoDiagrams is returned when the catalog is empty.
var ErrNoDiagrams = errors.New("tui: no diagrams to explore")

const (
	litMarker    = "●"
	dimmedMarker = "○"
)

// Model is the bubbletea model. Each diagram keeps its own selection, so
// switching away and back restores it.
type Model struct {
	controllers []*selection.Controller
	current     int
	keys        keyMap
	help        help.Model
	styles      styles
	width       int
	quitting    bool
}

// New creates a model over every diagram in catalog, starting at startID
// (the first diagram when empty).
func New(catalog *diagram.Catalog, startID string) (Model, error) {
	if catalog == nil || catalog.Len() == 0 {
		return Model{}, ErrNoDiagrams
	}

	m := Model{
		keys:   defaultKeyMap(),
		help:   help.New(),
		styles: defaultStyles(),
	}
	for i, s := range catalog.List() {
		m.controllers = append(m.controllers, selection.New(s))
		if s.ID() == startID {
			m.current = i
		}
	}
	if startID != "" && m.controllers[m.current].Store().ID() != startID {
		return Model{}, fmt.Errorf("%w: %q", diagram.ErrNotFound, startID)
	}
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reset):
			m.controller().Reset()
		case key.Matches(msg, m.keys.Flow):
			m.toggleFlow(int(msg.String()[0] - '1'))
		case key.Matches(msg, m.keys.Next):
			m.current = (m.current + 1) % len(m.controllers)
		case key.Matches(msg, m.keys.Prev):
			m.current = (m.current + len(m.controllers) - 1) % len(m.controllers)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

// toggleFlow toggles the i-th legend flow; out-of-range keys are ignored.
func (m Model) toggleFlow(i int) {
	flows := m.controller().Store().Flows()
	if i < 0 || i >= len(flows) {
		return
	}
	m.controller().Toggle(flows[i].ID)
}

func (m Model) controller() *selection.Controller {
	return m.controllers[m.current]
}

// Selection returns the selection of the diagram on screen.
func (m Model) Selection() flowgraph.Selection {
	return m.controller().Selection()
}

// DiagramID returns the id of the diagram on screen.
func (m Model) DiagramID() string {
	return m.controller().Store().ID()
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	ctrl := m.controller()
	store := ctrl.Store()
	graph := ctrl.View()

	var b strings.Builder
	title := fmt.Sprintf("%s  (%d/%d)", store.Title(), m.current+1, len(m.controllers))
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")
	if store.Description() != "" {
		b.WriteString(m.styles.Muted.Render(store.Description()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.legend())
	b.WriteString("\n")

	labels := make(map[string]string, len(graph.Nodes))
	for _, n := range graph.Nodes {
		labels[n.ID] = nodeLabel(n)
	}

	b.WriteString(m.styles.Section.Render("Components"))
	b.WriteString("\n")
	for _, n := range graph.Nodes {
		line := fmt.Sprintf("%s %s", marker(n.Dimmed), labels[n.ID])
		if n.Category != "" {
			line += " " + m.styles.Muted.Render("["+n.Category+"]")
		}
		b.WriteString("  " + m.entity(n.Dimmed).Render(line) + "\n")
	}

	b.WriteString(m.styles.Section.Render("Interactions"))
	b.WriteString("\n")
	for _, e := range graph.Edges {
		line := fmt.Sprintf("%s %s → %s", marker(e.Dimmed), labels[e.Source], labels[e.Target])
		if e.Label != "" {
			line += ": " + e.Label
		}
		b.WriteString("  " + m.entity(e.Dimmed).Render(line) + "\n")
	}

	nodes, edges := flowgraph.Stats(graph)
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d of %d components, %d of %d interactions highlighted",
		nodes, len(graph.Nodes), edges, len(graph.Edges))))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m Model) legend() string {
	sel := m.controller().Selection()
	current, active := sel.Flow()

	items := []string{m.flowItem("0", "All flows", "", !active)}
	for i, f := range m.controller().Store().Flows() {
		if i >= 9 {
			break
		}
		items = append(items, m.flowItem(fmt.Sprint(i+1), docs.FlowLabel(f), f.Color, active && current == f.ID))
	}
	return strings.Join(items, "  ")
}

func (m Model) flowItem(shortcut, label, color string, selected bool) string {
	text := fmt.Sprintf("[%s] %s", shortcut, label)
	style := m.styles.Flow
	if color != "" {
		style = style.Foreground(lipgloss.Color(color))
	}
	if selected {
		return m.styles.Selected.Render("*" + text)
	}
	return style.Render(text)
}

func (m Model) entity(dimmed bool) lipgloss.Style {
	if dimmed {
		return m.styles.Dimmed
	}
	return m.styles.Lit
}

func marker(dimmed bool) string {
	if dimmed {
		return dimmedMarker
	}
	return litMarker
}

func nodeLabel(n flowgraph.Node) string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Run starts the explorer and blocks until the user quits or ctx ends.
func Run(ctx context.Context, catalog *diagram.Catalog, startID string, in io.Reader, out io.Writer) error {
	m, err := New(catalog, startID)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("explorer failed: %w", err)
	}
	return nil
}
