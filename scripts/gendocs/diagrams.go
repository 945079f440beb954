package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/archdocs/internal/diagram"
	"github.com/leapstack-labs/archdocs/internal/diagrams"
	"github.com/leapstack-labs/archdocs/internal/docs"
	"github.com/leapstack-labs/archdocs/pkg/flowgraph"
)

// generateDiagramDocs writes one reference page per built-in diagram.
func generateDiagramDocs(outDir string) error {
	log.Printf("Generating diagram docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, s := range diagrams.Builtin().List() {
		if err := generateDiagramPage(s, outDir); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", s.ID(), err)
		}
		log.Printf("  Generated %s.md", s.ID())
	}
	return nil
}

func generateDiagramPage(s *diagram.Store, outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter(s.Title(), s.Description())
	w.GeneratedMarker()

	w.Header(1, s.Title())
	if s.Description() != "" {
		w.Paragraph(s.Description())
	}
	w.CodeBlock("bash", fmt.Sprintf("archdocs show %s --flow <flow>", s.ID()))

	// Flows with their members
	w.Header(2, "Flows")
	idx := s.Index()
	var flowRows [][]string
	for _, f := range s.Flows() {
		nodes, edges := idx.FlowMembers(f.ID)
		flowRows = append(flowRows, []string{
			InlineCode(string(f.ID)),
			docs.FlowLabel(f),
			fmt.Sprintf("%d", len(nodes)),
			fmt.Sprintf("%d", len(edges)),
			cleanDescription(f.Description),
		})
	}
	w.Table([]string{"Flow", "Label", "Components", "Interactions", "Description"}, flowRows)

	g := s.Graph()

	w.Header(2, "Components")
	var nodeRows [][]string
	for _, n := range g.Nodes {
		nodeRows = append(nodeRows, []string{
			InlineCode(n.ID), n.Label, string(n.Kind), n.Category, joinFlows(n.Flows),
		})
	}
	w.Table([]string{"ID", "Label", "Kind", "Category", "Flows"}, nodeRows)

	w.Header(2, "Interactions")
	var edgeRows [][]string
	for _, e := range g.Edges {
		edgeRows = append(edgeRows, []string{
			InlineCode(e.Source) + " → " + InlineCode(e.Target), e.Label, joinFlows(e.Flows),
		})
	}
	w.Table([]string{"Direction", "Label", "Flows"}, edgeRows)

	filename := filepath.Join(outDir, s.ID()+".md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}

func joinFlows(flows flowgraph.FlowSet) string {
	ids := make([]string, len(flows))
	for i, f := range flows {
		ids[i] = string(f)
	}
	return strings.Join(ids, ", ")
}
