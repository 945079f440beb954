package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/archdocs/internal/cli"
	"github.com/leapstack-labs/archdocs/internal/cli/config"
	"github.com/leapstack-labs/archdocs/internal/cli/output"
	"github.com/leapstack-labs/archdocs/internal/tui"
	"github.com/leapstack-labs/archdocs/pkg/flowgraph"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flowSelection describes how a command lets the reader pick a flow.
type flowSelection struct {
	summary string
	write   func(w *MarkdownWriter)
}

// flowSelections is keyed by page name.
var flowSelections = map[string]flowSelection{
	"show": {
		summary: "`--flow <id>` highlights one flow, `--node <id>` narrows to a neighbourhood",
		write: func(w *MarkdownWriter) {
			w.Paragraph("Components and interactions outside the selected flow are reported as dimmed; nothing is removed. " +
				"A flow the diagram does not declare dims everything and prints a warning.")
			w.BulletList([]string{
				InlineCode("--flow pricing") + " highlights the pricing flow",
				InlineCode("--flow "+flowgraph.AllFlowsKeyword) + " or no flag shows every flow",
				InlineCode("--node api") + " limits the view to the node, its direct neighbours and the edges between them",
			})
		},
	},
	"ui": {
		summary: "legend buttons in the browser, remembered per session",
		write: func(w *MarkdownWriter) {
			w.Paragraph("Clicking a flow in the legend selects it; clicking it again resets the view. " +
				"The choice is stored in the browser session and survives reloads of the diagram files.")
			w.Table([]string{"Endpoint", "Flow parameter"}, [][]string{
				{InlineCode("POST /diagrams/{id}/select"), InlineCode("?flow=<id>") + " stores the selection and patches the page"},
				{InlineCode("GET /api/diagrams/{id}"), InlineCode("?flow=<id>") + " returns the filtered graph as JSON"},
			})
			w.Paragraph(fmt.Sprintf("An empty flow or %s resets the selection.", InlineCode(flowgraph.AllFlowsKeyword)))
		},
	},
	"explore": {
		summary: "number keys toggle flows in the terminal",
		write: func(w *MarkdownWriter) {
			w.Paragraph("The legend numbers the first nine flows of the diagram on screen. Each diagram keeps its own selection while you switch between them.")
			var rows [][]string
			for _, b := range tui.KeyBindings() {
				rows = append(rows, []string{InlineCode(b.Help().Key), b.Help().Desc})
			}
			w.Table([]string{"Key", "Action"}, rows)
		},
	},
}

var outputModeDescriptions = map[output.OutputMode]string{
	output.ModeAuto:     "text on a terminal, markdown otherwise",
	output.ModeText:     "styled tables for humans",
	output.ModeMarkdown: "tables and headers for piping into docs or agents",
	output.ModeJSON:     "machine-readable output",
}

type configKey struct {
	key, def, desc string
}

var configKeys = []configKey{
	{"diagrams_dir", config.DefaultDiagramsDir, "Directory of authored diagram files"},
	{"builtin", "true", "Include the built-in platform diagrams"},
	{"strict_flows", "false", "Check every flow tag against the declared flows"},
	{"verbose", "false", "Debug logging on stderr"},
	{"output", config.DefaultOutput, "Output format"},
	{"docs.output_dir", config.DefaultDocsDir, "Where `docs build` writes the site"},
	{"docs.project_name", config.DefaultProjectName, "Title of the generated site"},
	{"ui.port", fmt.Sprint(config.DefaultUIPort), "UI server port"},
	{"ui.auto_open", "true", "Open the browser when the UI starts"},
	{"ui.watch", "true", "Reload diagrams when files change"},
	{"ui.session_secret", "", "Key for signing UI session cookies, generated per run when empty"},
	{"ui.debounce", config.DefaultDebounce.String(), "Quiet period before a burst of file changes reloads"},
}

// generateCLIDocs generates CLI documentation from Cobra commands.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rootCmd := cli.NewRootCmd()
	commands := documentedCommands(rootCmd)

	if err := generateCLIIndex(rootCmd, commands, outDir); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}
	log.Printf("  Generated index.md")

	for _, cmd := range commands {
		if err := generateCommandPage(cmd, outDir); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.CommandPath(), err)
		}
		log.Printf("  Generated %s.md", pageName(cmd))
	}

	return nil
}

// documentedCommands returns every visible command below root, each parent
// before its subcommands.
func documentedCommands(root *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "__complete" {
			continue
		}
		out = append(out, cmd)
		out = append(out, documentedCommands(cmd)...)
	}
	return out
}

// pageName turns "archdocs docs build" into "docs-build".
func pageName(cmd *cobra.Command) string {
	path := strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()+" ")
	return strings.ReplaceAll(path, " ", "-")
}

func pageLink(cmd *cobra.Command) string {
	path := strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()+" ")
	return fmt.Sprintf("[%s](/cli/%s)", InlineCode(path), pageName(cmd))
}

// generateCLIIndex generates the CLI overview page.
func generateCLIIndex(rootCmd *cobra.Command, commands []*cobra.Command, outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("CLI Reference", "Command-line interface reference for archdocs")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("archdocs explains a system through architecture diagrams whose components and interactions are tagged with flows. " +
		"The CLI lists and validates diagrams, highlights one flow at a time in the terminal or browser, and publishes a static site.")

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/archdocs/cmd/archdocs@latest")

	w.Header(2, "Basic Usage")
	w.CodeBlock("bash", `archdocs list
archdocs show live-flow --flow pricing
archdocs ui`)

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range commands {
		rows = append(rows, []string{pageLink(cmd), cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	w.Paragraph("These flags are available for all commands:")
	writeFlagsTable(w, rootCmd.PersistentFlags())

	w.Header(2, "Flow Selection")
	w.Paragraph(fmt.Sprintf("Selecting a flow never hides anything: entities outside it are dimmed. "+
		"%s and an empty selection both mean every flow, so no diagram may name a flow %s.",
		InlineCode(flowgraph.AllFlowsKeyword), InlineCode(flowgraph.AllFlowsKeyword)))
	rows = nil
	for _, cmd := range commands {
		if sel, ok := flowSelections[pageName(cmd)]; ok {
			rows = append(rows, []string{pageLink(cmd), sel.summary})
		}
	}
	w.Table([]string{"Command", "How to select a flow"}, rows)

	w.Header(2, "Output Formats")
	var modes []string
	for _, m := range output.Modes {
		modes = append(modes, fmt.Sprintf("%s: %s", InlineCode(string(m)), outputModeDescriptions[m]))
	}
	w.BulletList(modes)

	w.Header(2, "Configuration")
	w.Paragraph("Settings are layered, later sources winning:")
	w.BulletList([]string{
		"built-in defaults",
		InlineCode("archdocs.yaml") + " or " + InlineCode("archdocs.yml") + ", searched upward from the working directory, or the file given with " + InlineCode("--config"),
		InlineCode(config.EnvPrefix+"*") + " environment variables",
		"command-line flags that were set explicitly",
	})
	rows = nil
	for _, k := range configKeys {
		def := k.def
		if def != "" {
			def = InlineCode(def)
		}
		rows = append(rows, []string{InlineCode(k.key), InlineCode(config.EnvVar(k.key)), def, k.desc})
	}
	w.Table([]string{"Key", "Environment", "Default", "Description"}, rows)
	w.Paragraph("Relative paths resolve against the directory of the config file.")

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success"},
		{InlineCode("1"), "Error, including diagrams that fail validation (check stderr for details)"},
	})

	w.Header(2, "Getting Help")
	w.CodeBlock("bash", `# General help
archdocs help
archdocs --help

# Command-specific help
archdocs show --help`)

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// generateCommandPage generates documentation for a single command.
func generateCommandPage(cmd *cobra.Command, outDir string) error {
	w := NewMarkdownWriter()

	title := strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()+" ")
	w.Frontmatter(title, cmd.Short)
	w.GeneratedMarker()

	w.Header(1, title)
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.Header(2, "Usage")
	useLine := cmd.UseLine()
	if cmd.HasSubCommands() {
		useLine = cmd.CommandPath() + " <subcommand> [options]"
	}
	w.CodeBlock("bash", useLine)

	if len(cmd.Aliases) > 0 {
		w.Header(2, "Aliases")
		var aliases []string
		for _, alias := range cmd.Aliases {
			aliases = append(aliases, InlineCode(alias))
		}
		w.BulletList(aliases)
	}

	if cmd.HasSubCommands() {
		w.Header(2, "Subcommands")
		var rows [][]string
		for _, sub := range cmd.Commands() {
			if sub.Hidden {
				continue
			}
			rows = append(rows, []string{pageLink(sub), cleanDescription(sub.Short)})
		}
		w.Table([]string{"Subcommand", "Description"}, rows)
	}

	if sel, ok := flowSelections[pageName(cmd)]; ok {
		w.Header(2, "Flow Selection")
		sel.write(w)
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}

	if cmd.HasInheritedFlags() {
		w.Header(2, "Global Options")
		writeFlagsTable(w, cmd.InheritedFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}

	return os.WriteFile(filepath.Join(outDir, pageName(cmd)+".md"), w.Bytes(), 0600)
}

// writeFlagsTable writes a table of flags.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		short := ""
		if f.Shorthand != "" {
			short = "-" + f.Shorthand
		}

		defVal := f.DefValue
		if f.Value.Type() == "string" && defVal != "" {
			defVal = InlineCode(defVal)
		}

		rows = append(rows, []string{
			InlineCode("--" + f.Name),
			short,
			defVal,
			cleanDescription(f.Usage),
		})
	})

	w.Table([]string{"Option", "Short", "Default", "Description"}, rows)
}

// cleanExample removes common leading whitespace from example text.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")

	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}

	if minIndent <= 0 {
		return strings.TrimSpace(example)
	}

	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if len(line) >= minIndent {
			result = append(result, line[minIndent:])
		} else {
			result = append(result, strings.TrimLeft(line, " \t"))
		}
	}

	return strings.TrimSpace(strings.Join(result, "\n"))
}
