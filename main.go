package main

import (
	"os"

	"github.com/iburimskiy/luminar-weave/internal/cli"
)

func main() {
	if err := cli.BuildCLI().Execute(); err != nil {
		os.Exit(1)
	}
}
