package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/nestdict/internal/codec"
	"github.com/roach88/nestdict/internal/ir"
	"github.com/roach88/nestdict/internal/store"
)

// addDocumentFlags registers the flags shared by commands that open a
// document.
func addDocumentFlags(cmd *cobra.Command, opts *DocumentOptions) {
	cmd.Flags().StringVarP(&opts.Schema, "schema", "s", "", "schema file (.cue, .yaml or .json)")
	cmd.Flags().StringVar(&opts.InputFormat, "input-format", "", "document format (json|jsonc|yaml|cbor); default from extension")
}

// WriteOptions holds flags for commands that produce a modified document.
type WriteOptions struct {
	DocumentOptions
	OutputFormat string // defaults to the input format
	Output       string // output file; stdout when empty
	InPlace      bool   // overwrite the input document
}

func addWriteFlags(cmd *cobra.Command, opts *WriteOptions) {
	addDocumentFlags(cmd, &opts.DocumentOptions)
	cmd.Flags().StringVar(&opts.OutputFormat, "output-format", "", "output format (json|jsonc|yaml|cbor); default is the input format")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the result to a file instead of stdout")
	cmd.Flags().BoolVarP(&opts.InPlace, "in-place", "i", false, "overwrite the input document")
}

// emitDocument writes the store's document as configured by opts. With
// --format json and no target file, the document is wrapped in a
// CLIResponse instead.
func emitDocument(opts *WriteOptions, docPath string, st *store.Store, formatter *OutputFormatter) error {
	if opts.InPlace && opts.Output != "" {
		return &LoadError{Code: ErrCodeGeneric, Message: "--in-place and --output are mutually exclusive"}
	}

	target := opts.Output
	if opts.InPlace {
		target = docPath
	}

	if target == "" && formatter.Format == "json" {
		return formatter.Success(ir.ToGo(st.Canonical()))
	}

	format := opts.OutputFormat
	if format == "" {
		format = opts.InputFormat
	}
	if format == "" && target != "" && !opts.InPlace {
		format = string(codec.FormatFromPath(target))
	}
	f, err := resolveFormat(format, docPath)
	if err != nil {
		return err
	}

	data, err := codec.Encode(st.Canonical(), f)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	if target == "" {
		if _, err := formatter.Writer.Write(data); err != nil {
			return err
		}
		if f == codec.FormatJSON || f == codec.FormatJSONC {
			fmt.Fprintln(formatter.Writer)
		}
		return nil
	}

	if err := os.WriteFile(target, data, 0644); err != nil {
		return &LoadError{Code: ErrCodeWriteFailed, Message: fmt.Sprintf("failed to write %s", target), Err: err}
	}
	formatter.VerboseLog("Wrote %s (%s)", target, f)
	return nil
}

// parseValue reads a command-line value as JSON. Text that is not valid
// JSON is taken as a plain string, so `set doc.json user.name Alice` works
// without quoting.
func parseValue(arg string) ir.Value {
	v, err := codec.Decode([]byte(arg), codec.FormatJSON)
	if err != nil {
		return ir.String(arg)
	}
	return v
}

// render formats a value as canonical JSON for text output.
func render(v ir.Value) string {
	s, err := ir.CanonicalString(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return s
}
