// Package output renders command results for terminals, pipes and tools.
//
// Auto mode prints styled text on a TTY and Markdown otherwise, so agents
// and scripts get a stable, readable format without extra flags.
package output

import (
	"fmt"
	"strings"
)

// OutputMode selects how a command renders its results.
//
//nolint:revive // stutters with the package name
type OutputMode string

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// Modes lists every valid mode, for flag completion and validation.
var Modes = []OutputMode{ModeAuto, ModeText, ModeMarkdown, ModeJSON}

// Mode converts a config or flag value into an OutputMode.
// Unknown and empty values fall back to auto.
func Mode(s string) OutputMode {
	m, err := ParseMode(s)
	if err != nil {
		return ModeAuto
	}
	return m
}

// ParseMode is Mode with an error for unknown values. "md" is accepted as
// a short form of markdown.
func ParseMode(s string) (OutputMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "text":
		return ModeText, nil
	case "markdown", "md":
		return ModeMarkdown, nil
	case "json":
		return ModeJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want auto, text, markdown or json)", s)
	}
}
