// Package main is the entry point for the sheetgen CLI
package main

import (
	"fmt"
	"os"

	"github.com/KirkDiggler/sheetgen/internal/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.ExitCode(err))
	}
}
