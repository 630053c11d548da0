// Command stringvault analyzes, stores and queries strings.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/stringvault/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
