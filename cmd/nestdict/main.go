// Command nestdict reads, writes and validates nested documents through
// flat keypaths.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/nestdict/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}
