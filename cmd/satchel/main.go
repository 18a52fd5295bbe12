// Package main provides the CLI for the satchel constraint script runner.
package main

import (
	"os"

	"github.com/leapstack-labs/satchel/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
