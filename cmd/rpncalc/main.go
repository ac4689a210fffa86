// Rpncalc is a Reverse Polish notation calculator for the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/karrick/rpncalc/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintf(os.Stderr, "rpncalc: %s\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
