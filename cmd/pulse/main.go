// Package main is the entry point for the pulse demo.
package main

import (
	"fmt"
	"os"

	"github.com/dshills/pulse/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
