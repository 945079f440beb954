package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/leapstack-labs/archdocs/internal/cli/output"
)

// minSecretLength matches the securecookie hash key recommendation.
const minSecretLength = 32

// Validate checks if the configuration is valid.
// Every problem is reported, not just the first.
func (c *Config) Validate() error {
	var errs []error
	if c.DiagramsDir == "" && !c.Builtin {
		errs = append(errs, errors.New("diagrams_dir is required when builtin diagrams are disabled"))
	}
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		errs = append(errs, err)
	}
	if c.UI.Port < 0 || c.UI.Port > 65535 {
		errs = append(errs, fmt.Errorf("ui.port must be between 0 and 65535, got %d", c.UI.Port))
	}
	if c.UI.Debounce < 0 {
		errs = append(errs, fmt.Errorf("ui.debounce must not be negative, got %s", c.UI.Debounce))
	}
	if s := c.UI.SessionSecret; s != "" && len(s) < minSecretLength {
		errs = append(errs, fmt.Errorf("ui.session_secret must be at least %d bytes", minSecretLength))
	}
	return errors.Join(errs...)
}

// ValidateDirectories checks that the diagrams directory exists. A missing
// directory is fine while the built-in diagrams are enabled.
func (c *Config) ValidateDirectories() error {
	if _, err := os.Stat(c.DiagramsDir); os.IsNotExist(err) {
		if c.Builtin {
			return nil
		}
		return fmt.Errorf("diagrams directory does not exist: %s\nHint: Create the directory or use --diagrams-dir to specify a different path", c.DiagramsDir)
	}
	return nil
}
