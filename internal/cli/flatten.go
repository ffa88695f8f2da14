package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/nestdict/internal/flat"
	"github.com/roach88/nestdict/internal/ir"
)

// FlattenOptions holds flags for the flatten command.
type FlattenOptions struct {
	DocumentOptions
	Leaves bool // only print scalar entries
}

// FlatEntry is one keypath/value pair in JSON output.
type FlatEntry struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// NewFlattenCommand creates the flatten command.
func NewFlattenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FlattenOptions{DocumentOptions: DocumentOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "flatten <document>",
		Short: "List every keypath in a document",
		Long: `List every keypath in a document with its value, depth first.

Composite values appear under their own path and again through their
descendants. Use --leaves to print scalars only.

Examples:
  nestdict flatten profile.yaml
  nestdict flatten profile.json --leaves --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlatten(opts, args[0], cmd)
		},
	}

	addDocumentFlags(cmd, &opts.DocumentOptions)
	cmd.Flags().BoolVar(&opts.Leaves, "leaves", false, "only list scalar values")

	return cmd
}

func runFlatten(opts *FlattenOptions, docPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openStore(&opts.DocumentOptions, docPath, opts.Logger(formatter.GetErrWriter()))
	if err != nil {
		return formatter.Fail(err)
	}

	var pairs []flat.Pair
	for _, pair := range st.Flatten() {
		if opts.Leaves && ir.KindOf(pair.Value).IsComposite() {
			continue
		}
		pairs = append(pairs, pair)
	}

	if formatter.Format == "json" {
		entries := make([]FlatEntry, len(pairs))
		for i, pair := range pairs {
			entries[i] = FlatEntry{Path: pair.Path, Value: ir.ToGo(pair.Value)}
		}
		return formatter.Success(entries)
	}

	for _, pair := range pairs {
		fmt.Fprintf(formatter.Writer, "%s = %s\n", pair.Path, render(pair.Value))
	}
	return nil
}
