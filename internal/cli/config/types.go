// Package config loads archdocs CLI configuration.
//
// Values are layered lowest to highest: built-in defaults, archdocs.yaml,
// ARCHDOCS_ environment variables, then flags set on the command line.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	// ProjectRoot anchors relative paths. It is derived, never read from a file.
	ProjectRoot string `koanf:"-"`
	// ConfigFile is the config file that was loaded, if any.
	ConfigFile string `koanf:"-"`

	DiagramsDir  string     `koanf:"diagrams_dir"`
	Builtin      bool       `koanf:"builtin"`
	StrictFlows  bool       `koanf:"strict_flows"`
	Verbose      bool       `koanf:"verbose"`
	OutputFormat string     `koanf:"output"`
	Docs         DocsConfig `koanf:"docs"`
	UI           UIConfig   `koanf:"ui"`
}

// DocsConfig configures the static documentation site.
type DocsConfig struct {
	OutputDir   string `koanf:"output_dir"`
	ProjectName string `koanf:"project_name"`
}

// UIConfig holds configuration for the UI server.
type UIConfig struct {
	Port          int           `koanf:"port"`
	AutoOpen      bool          `koanf:"auto_open"`
	Watch         bool          `koanf:"watch"`
	SessionSecret string        `koanf:"session_secret"`
	Debounce      time.Duration `koanf:"debounce"`
}

// Default configuration values.
const (
	DefaultDiagramsDir = "diagrams"
	DefaultOutput      = "auto" // TTY=text, non-TTY=markdown
	DefaultDocsDir     = "site"
	DefaultProjectName = "Architecture"
	DefaultUIPort      = 8765
	DefaultDebounce    = 100 * time.Millisecond
)

// ConfigFileNames are the file names searched for, in order.
var ConfigFileNames = []string{"archdocs.yaml", "archdocs.yml"}

func defaults() map[string]any {
	return map[string]any{
		"diagrams_dir":      DefaultDiagramsDir,
		"builtin":           true,
		"strict_flows":      false,
		"verbose":           false,
		"output":            DefaultOutput,
		"docs.output_dir":   DefaultDocsDir,
		"docs.project_name": DefaultProjectName,
		"ui.port":           DefaultUIPort,
		"ui.auto_open":      true,
		"ui.watch":          true,
		"ui.session_secret": "",
		"ui.debounce":       DefaultDebounce,
	}
}
