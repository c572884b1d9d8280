// Command edscheck evaluates division polynomial sequences and checks the
// elliptic divisibility sequence identity from the command line.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
