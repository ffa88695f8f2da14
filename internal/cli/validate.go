package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/nestdict/internal/schema"
)

// ValidationIssue describes one schema violation.
type ValidationIssue struct {
	Code    string `json:"code"`   // schema error code, e.g. "TypeMismatch"
	Path    string `json:"path"`   // keypath of the offending value; empty for the root
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DocumentOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <document> --schema <schema>",
		Short: "Validate a document against a schema",
		Long: `Validate a document against a schema written in CUE or YAML.

Validation stops at the first violated constraint and reports its code
and keypath.

Exit codes:
  0 - Document is valid
  1 - Document violates the schema
  2 - Command error (missing files, undecodable document, bad schema)

Examples:
  nestdict validate profile.json --schema profile.cue
  nestdict validate people.yaml -s people.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	addDocumentFlags(cmd, opts)
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runValidate(opts *DocumentOptions, docPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	formatter.VerboseLog("Validating %s against %s", docPath, opts.Schema)

	_, err := openStore(opts, docPath, opts.Logger(formatter.GetErrWriter()))
	if err == nil {
		return outputValidateSuccess(formatter)
	}

	var ve *schema.ValidationError
	if !errors.As(err, &ve) {
		return formatter.Fail(err)
	}
	return outputValidationErrors(formatter, []ValidationIssue{{
		Code:    string(ve.Code),
		Path:    ve.Path,
		Message: ve.Message,
	}})
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true})
	}

	fmt.Fprintln(formatter.Writer, "✓ Document valid")
	return nil
}

// outputValidationErrors outputs schema violations.
func outputValidationErrors(formatter *OutputFormatter, issues []ValidationIssue) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data: ValidationResult{
				Valid:  false,
				Errors: issues,
			},
			Error: &CLIError{
				Code:    ErrCodeValidation,
				Message: issues[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(issues)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, issue := range issues {
		if issue.Path != "" {
			fmt.Fprintf(formatter.Writer, "%s\n", issue.Path)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", issue.Code, issue.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(issues)))
}
