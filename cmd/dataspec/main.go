// Package main provides the dataspec command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/dataspec/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
