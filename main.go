package main

import (
	"fmt"
	"os"

	"github.com/tyemirov/runbook/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the runbook command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(cli.ExitCode(executionError))
	}
}
