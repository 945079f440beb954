package output

import (
	"bytes"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputMode
		wantErr bool
	}{
		{"", ModeAuto, false},
		{"auto", ModeAuto, false},
		{"TEXT", ModeText, false},
		{"md", ModeMarkdown, false},
		{"markdown", ModeMarkdown, false},
		{" json ", ModeJSON, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ModeAuto, Mode(tt.in))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		mode  OutputMode
		isTTY bool
		want  OutputMode
	}{
		{ModeAuto, true, ModeText},
		{ModeAuto, false, ModeMarkdown},
		{ModeJSON, true, ModeJSON},
		{ModeText, false, ModeText},
	}
	for _, tt := range tests {
		r := NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, tt.isTTY, tt.mode)
		assert.Equal(t, tt.want, r.EffectiveMode(), "mode=%s tty=%v", tt.mode, tt.isTTY)
	}
}

func TestNewRenderer_BufferIsNotTTY(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.False(t, r.IsTTY())
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestHeader(t *testing.T) {
	var out bytes.Buffer
	r := NewRendererWithTTY(&out, &bytes.Buffer{}, false, ModeMarkdown)
	r.Header(2, "Flows")
	assert.Equal(t, "## Flows\n", out.String())

	out.Reset()
	r = NewRendererWithTTY(&out, &bytes.Buffer{}, false, ModeText)
	r.Header(1, "Flows")
	assert.Equal(t, "Flows\n", out.String())
}

func TestMessages_NoANSIWithoutTTY(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, false, ModeText)
	r.Success("done")
	r.Muted("quiet")
	r.Warning("careful")
	r.Error("broken")

	assert.Equal(t, "✓ done\nquiet\n", out.String())
	assert.Equal(t, "warning: careful\n✗ broken\n", errOut.String())
	assert.NotContains(t, out.String()+errOut.String(), "\x1b[")
}

func TestJSON(t *testing.T) {
	var out bytes.Buffer
	r := NewRendererWithTTY(&out, &bytes.Buffer{}, false, ModeJSON)
	require.NoError(t, r.JSON(map[string]int{"nodes": 3}))
	assert.Equal(t, "{\n  \"nodes\": 3\n}\n", out.String())
}

func TestTable(t *testing.T) {
	header := table.Row{"ID", "Title"}
	rows := []table.Row{{"checkout", "Checkout"}}

	var out bytes.Buffer
	NewRendererWithTTY(&out, &bytes.Buffer{}, false, ModeMarkdown).Table(header, rows)
	assert.Contains(t, out.String(), "| ID | Title |")
	assert.Contains(t, out.String(), "| checkout | Checkout |")

	out.Reset()
	NewRendererWithTTY(&out, &bytes.Buffer{}, false, ModeText).Table(header, rows)
	assert.Contains(t, out.String(), "┌")
	assert.Contains(t, out.String(), "checkout")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(0, "Title"))
	assert.Equal(t, "###### Deep", FormatHeader(9, "Deep"))
	assert.Equal(t, "**Flows:** 2", FormatKeyValue("Flows", "2"))
	assert.Equal(t, "- a\n- b", FormatList([]string{"a", "b"}))
	assert.Equal(t, "_none_", FormatList(nil))
	assert.Equal(t, "```yaml\nid: x\n```", FormatCodeBlock("yaml", "id: x\n"))
	assert.Equal(t, "-", JoinOrNone(nil))
	assert.Equal(t, "a, b", JoinOrNone([]string{"a", "b"}))
}

func TestKeyValue(t *testing.T) {
	var out bytes.Buffer
	NewRendererWithTTY(&out, &bytes.Buffer{}, false, ModeMarkdown).KeyValue("Selection", "all")
	assert.Equal(t, "**Selection:** all\n", out.String())

	out.Reset()
	NewRendererWithTTY(&out, &bytes.Buffer{}, false, ModeText).KeyValue("Selection", "all")
	assert.Equal(t, "Selection: all\n", out.String())
}
