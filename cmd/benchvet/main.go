// Package main provides the benchvet CLI for auditing the structure
// of software-bug benchmark repositories.
package main

import (
	"os"

	"github.com/claudeyj/benchvet/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
