package commands

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/archdocs/internal/cli/output"
	"github.com/leapstack-labs/archdocs/internal/diagram"
	"github.com/leapstack-labs/archdocs/internal/diagram/codec"
	"github.com/spf13/cobra"
)

// ErrInvalidDiagrams is returned when at least one file fails validation.
var ErrInvalidDiagrams = errors.New("invalid diagrams")

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Check diagram files for construction errors",
		Long: `Decode diagram files and report every construction error: dangling
edges, duplicate ids, undeclared flow tags and duplicate diagram ids.

Without arguments every diagram file in the diagrams directory is checked.
Exits non-zero when any file is invalid.`,
		Example: `  # Validate the diagrams directory
  archdocs validate

  # Validate specific files, requiring declared flows
  archdocs validate --strict-flows arch/checkout.yaml arch/billing.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args)
		},
	}

	return cmd
}

func runValidate(cmd *cobra.Command, files []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	if len(files) == 0 {
		files, err = codec.DiagramFiles(cmdCtx.Cfg.DiagramsDir)
		if err != nil {
			return err
		}
	}

	result := validateFiles(files, cmdCtx.StoreOptions())

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(result); err != nil {
			return err
		}
	} else {
		renderValidate(r, result)
	}

	if !result.Valid {
		invalid := 0
		for _, f := range result.Files {
			if !f.Valid {
				invalid++
			}
		}
		return fmt.Errorf("%w: %d of %d files failed", ErrInvalidDiagrams, invalid, len(result.Files))
	}
	return nil
}

// validateFiles checks each file on its own, then diagram ids across files.
func validateFiles(files []string, opts []diagram.Option) output.ValidateOutput {
	result := output.ValidateOutput{Valid: true, Files: make([]output.FileValidity, 0, len(files))}
	seen := make(map[string]string, len(files))

	for _, path := range files {
		fv := output.FileValidity{Path: path, Valid: true}

		s, err := codec.LoadFile(path, opts...)
		switch {
		case err != nil:
			fv.Valid = false
			fv.Problems = problemsOf(err)
			var verr *diagram.ValidationError
			if errors.As(err, &verr) {
				fv.Diagram = verr.Diagram
			}
		default:
			fv.Diagram = s.ID()
			if prev, dup := seen[s.ID()]; dup {
				fv.Valid = false
				fv.Problems = []string{fmt.Sprintf("%v: %q is also defined in %s", diagram.ErrDuplicateStore, s.ID(), prev)}
			} else {
				seen[s.ID()] = path
			}
		}

		if !fv.Valid {
			result.Valid = false
		}
		result.Files = append(result.Files, fv)
	}
	return result
}

// problemsOf flattens a ValidationError into its individual problems.
func problemsOf(err error) []string {
	var verr *diagram.ValidationError
	if !errors.As(err, &verr) {
		return []string{err.Error()}
	}
	out := make([]string, len(verr.Problems))
	for i, p := range verr.Problems {
		out[i] = p.Error()
	}
	return out
}

func renderValidate(r *output.Renderer, result output.ValidateOutput) {
	r.Header(1, "Validation")
	r.Println("")

	if len(result.Files) == 0 {
		r.Muted("No diagram files found.")
		return
	}

	for _, f := range result.Files {
		name := f.Path
		if f.Diagram != "" {
			name += " (" + f.Diagram + ")"
		}
		if f.Valid {
			r.Success(name)
			continue
		}
		r.Println(r.Styles().StatusFailed.String() + " " + name)
		for _, p := range f.Problems {
			r.Println("  - " + p)
		}
	}

	r.Println("")
	if result.Valid {
		r.Success(fmt.Sprintf("%d diagram files are valid", len(result.Files)))
	}
}
