package cli

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/spf13/cobra"

	"github.com/roach88/nestdict/internal/ir"
)

// QueryResult is the JSON payload of the query command.
type QueryResult struct {
	Expression string `json:"expression"`
	Results    []any  `json:"results"`
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DocumentOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <document> <jsonpath>",
		Short: "Select values with a JSONPath expression",
		Long: `Select values with a JSONPath expression. Use this for selections a
keypath cannot express, such as filters and recursive descent.

Each match is printed as canonical JSON on its own line.

Examples:
  nestdict query people.json '$[?(@.age > 30)].name'
  nestdict query config.yaml '$..port'`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], args[1], cmd)
		},
	}

	addDocumentFlags(cmd, opts)
	return cmd
}

func runQuery(opts *DocumentOptions, docPath, expr string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	x, err := jp.ParseString(expr)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidQuery, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeInvalidQuery, err)
	}

	st, err := openStore(opts, docPath, opts.Logger(formatter.GetErrWriter()))
	if err != nil {
		return formatter.Fail(err)
	}

	matches := x.Get(ir.ToGo(st.Canonical()))
	if matches == nil {
		matches = []any{}
	}
	formatter.VerboseLog("%d match(es) for %s", len(matches), expr)

	if formatter.Format == "json" {
		return formatter.Success(QueryResult{Expression: expr, Results: matches})
	}

	for _, m := range matches {
		v, err := ir.FromGo(m)
		if err != nil {
			return formatter.Fail(fmt.Errorf("query result: %w", err))
		}
		fmt.Fprintln(formatter.Writer, render(v))
	}
	return nil
}
