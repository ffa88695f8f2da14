package cli

import (
	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WriteOptions{DocumentOptions: DocumentOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "delete <document> <keypath>",
		Short: "Remove the value at a keypath",
		Long: `Remove the value at a keypath and everything beneath it, then print
the resulting document. Deleting a sequence element shifts later
elements down.

With --schema, deleting a required field fails and leaves the document
untouched.

Examples:
  nestdict delete profile.yaml user.nickname
  nestdict delete people.json '[0]' -i`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(opts, args[0], args[1], cmd)
		},
	}

	addWriteFlags(cmd, opts)
	return cmd
}

func runDelete(opts *WriteOptions, docPath, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openStore(&opts.DocumentOptions, docPath, opts.Logger(formatter.GetErrWriter()))
	if err != nil {
		return formatter.Fail(err)
	}

	if err := st.Delete(path); err != nil {
		return formatter.Fail(err)
	}
	formatter.VerboseLog("Deleted %s", path)

	if err := emitDocument(opts, docPath, st, formatter); err != nil {
		return formatter.Fail(err)
	}
	return nil
}
