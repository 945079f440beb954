package docs

import (
	"strings"
	"testing"

	"github.com/leapstack-labs/archdocs/internal/diagram"
	"github.com/leapstack-labs/archdocs/internal/diagram/codec"
	"github.com/leapstack-labs/archdocs/internal/testutil"
	"github.com/stretchr/testify/require"
)

// checkoutCatalog decodes the shared checkout diagram into a catalog.
func checkoutCatalog(t *testing.T) *diagram.Catalog {
	t.Helper()
	s, err := codec.Decode(strings.NewReader(testutil.CheckoutYAML), codec.FormatYAML)
	require.NoError(t, err)
	catalog, err := diagram.NewCatalog(s)
	require.NoError(t, err)
	return catalog
}

func findDiagram(t *testing.T, c *Catalog, id string) *DiagramDoc {
	t.Helper()
	for _, d := range c.Diagrams {
		if d.ID == id {
			return d
		}
	}
	t.Fatalf("diagram %q not in catalog", id)
	return nil
}
