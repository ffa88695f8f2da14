package cli

import (
	"github.com/spf13/cobra"
)

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WriteOptions{DocumentOptions: DocumentOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "set <document> <keypath> <value>",
		Short: "Write a value at a keypath",
		Long: `Write a value at a keypath and print the resulting document.

The value is parsed as JSON; anything that is not valid JSON is stored as
a string. Missing ancestors are created: a following [N] segment creates a
sequence, a key creates a mapping. Sequences grow only by appending at
their current length.

With --schema the write is validated first and a rejected write leaves
the document untouched.

Examples:
  nestdict set profile.yaml user.name Alice
  nestdict set profile.json user.tags.[0] '"admin"' --schema profile.cue
  nestdict set profile.json user.age 31 -i
  nestdict set data.json items.[2] '{"id": 3}' -o out.cbor`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(opts, args[0], args[1], args[2], cmd)
		},
	}

	addWriteFlags(cmd, opts)
	return cmd
}

func runSet(opts *WriteOptions, docPath, path, raw string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openStore(&opts.DocumentOptions, docPath, opts.Logger(formatter.GetErrWriter()))
	if err != nil {
		return formatter.Fail(err)
	}

	if err := st.Set(path, parseValue(raw)); err != nil {
		return formatter.Fail(err)
	}
	formatter.VerboseLog("Set %s", path)

	if err := emitDocument(opts, docPath, st, formatter); err != nil {
		return formatter.Fail(err)
	}
	return nil
}
