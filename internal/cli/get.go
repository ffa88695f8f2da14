package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/nestdict/internal/ir"
)

// GetOptions holds flags for the get command.
type GetOptions struct {
	DocumentOptions
	Default    string
	hasDefault bool
}

// GetResult is the JSON payload of the get command.
type GetResult struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GetOptions{DocumentOptions: DocumentOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "get <document> <keypath>",
		Short: "Read the value at a keypath",
		Long: `Read the value at a keypath and print it as canonical JSON.

A keypath is a dot-separated list of mapping keys and sequence indexes,
for example user.address.[0].city. A single [] segment collects the
value from every element of a sequence: users.[].name.

Without --default, a missing path fails with E103.

Examples:
  nestdict get profile.yaml user.name
  nestdict get profile.json users.[].email
  nestdict get profile.json user.nickname --default '"none"'`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.hasDefault = cmd.Flags().Changed("default")
			return runGet(opts, args[0], args[1], cmd)
		},
	}

	addDocumentFlags(cmd, &opts.DocumentOptions)
	cmd.Flags().StringVar(&opts.Default, "default", "", "value (JSON) printed when the path is absent")

	return cmd
}

func runGet(opts *GetOptions, docPath, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openStore(&opts.DocumentOptions, docPath, opts.Logger(formatter.GetErrWriter()))
	if err != nil {
		return formatter.Fail(err)
	}

	var v ir.Value
	if opts.hasDefault {
		v = st.Get(path, parseValue(opts.Default))
	} else {
		v, err = st.Lookup(path)
		if err != nil {
			return formatter.Fail(err)
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(GetResult{Path: path, Value: ir.ToGo(v)})
	}
	return formatter.Success(render(v))
}
