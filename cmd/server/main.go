// Package main implements lessond, the command line entry point for the
// lesson synthesis service. It serves the HTTP API, prints single lessons,
// reports performance budgets and manages the Postgres curriculum schema.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
