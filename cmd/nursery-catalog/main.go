// Package main is the entry point for nursery-catalog.
package main

import (
	"os"

	"nursery-catalog/cmd/nursery-catalog/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
