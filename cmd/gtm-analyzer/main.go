// Package main is the gtm-analyzer command line tool. It analyzes a GTM
// container export file and prints unused variables, duplicate variables and
// unused custom templates.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
