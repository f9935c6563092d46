// Package main is the entry point for the labelctl CLI.
package main

import (
	"os"

	"github.com/driveops/labelctl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
