// Package main is the entry point for the ccenv CLI.
package main

import (
	"os"

	"github.com/ccenv/ccenv/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
