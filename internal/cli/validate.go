package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/circles/internal/fixture"
)

// FileValidation is the outcome for one fixture file.
type FileValidation struct {
	Path    string `json:"path"`
	Valid   bool   `json:"valid"`
	Circles int    `json:"circles"`
	Trust   bool   `json:"trust"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <fixture>...",
		Short: "Validate fixture files against the schema",
		Long: `Check circle fixture documents against the fixture schema without
loading them into a catalog.

Every file is checked; the command fails if any of them is invalid.
Errors carry the line and column CUE reports.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	result := ValidationResult{Valid: true, Files: make([]FileValidation, 0, len(paths))}
	for _, path := range paths {
		formatter.VerboseLog("Validating %s", path)
		fv := validateFile(path)
		if !fv.Valid {
			result.Valid = false
		}
		result.Files = append(result.Files, fv)
	}

	if result.Valid {
		return outputValidateSuccess(formatter, result)
	}
	return outputValidationErrors(formatter, result)
}

// validateFile loads one fixture and reports what it found.
func validateFile(path string) FileValidation {
	fv := FileValidation{Path: path}

	f, err := fixture.Load(path)
	if err != nil {
		var loadErr *fixture.LoadError
		if errors.As(err, &loadErr) {
			fv.Code = loadErr.Code
			fv.Message = loadErr.Message
			if loadErr.Pos.IsValid() {
				fv.Line = loadErr.Pos.Line()
				fv.Column = loadErr.Pos.Column()
			}
		} else {
			fv.Code = ErrCodeGeneric
			fv.Message = err.Error()
		}
		return fv
	}

	fv.Valid = true
	fv.Circles = len(f.Circles)
	fv.Trust = f.Trust != nil
	return fv
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	for _, f := range result.Files {
		fmt.Fprintf(formatter.Writer, "✓ %s (%d %s)\n", f.Path, f.Circles, plural(f.Circles, "circle"))
	}
	fmt.Fprintln(formatter.Writer, "✓ All fixtures valid")
	return nil
}

// outputValidationErrors outputs per-file results when any file failed.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	var first *FileValidation
	failed := 0
	for i := range result.Files {
		if !result.Files[i].Valid {
			if first == nil {
				first = &result.Files[i]
			}
			failed++
		}
	}

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    first.Code,
				Message: first.Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed for %d file(s)", failed))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, f := range result.Files {
		if f.Valid {
			fmt.Fprintf(formatter.Writer, "✓ %s\n", f.Path)
			continue
		}
		if f.Line > 0 {
			fmt.Fprintf(formatter.Writer, "✗ %s line %d\n", f.Path, f.Line)
		} else {
			fmt.Fprintf(formatter.Writer, "✗ %s\n", f.Path)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", f.Code, f.Message)
	}

	// Validation failures = exit code 1 (test/validation failure)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed for %d file(s)", failed))
}
