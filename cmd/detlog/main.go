// Command detlog computes sign(det A) and log|det A| for a square matrix
// stored as delimited text and prints the determinant in scientific
// notation, however far outside float64 range it lies.
//
// Usage:
//
//	detlog [flags] <matrix.csv>
//	detlog generate [--seed S] [--out file] <n>
//
// Defaults come from DETLOG_* environment variables (see package config);
// flags override them.
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/detlog/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
