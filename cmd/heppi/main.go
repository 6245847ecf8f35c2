// Package main is the entry point for the heppi CLI.
package main

import (
	"os"

	"github.com/heppi/heppi/cmd/heppi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
