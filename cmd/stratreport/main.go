package main

import (
	"fmt"
	"os"

	"github.com/rustyeddy/stratreport/cmd/stratreport/cmd"
	"github.com/rustyeddy/stratreport/pipeline"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error [%s]: %v\n", pipeline.Kind(err), err)
		os.Exit(pipeline.ExitCode(err))
	}
}
