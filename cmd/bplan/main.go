// Command bplan converts battle plans between plan files, chat scripts and
// otfbm.io map URLs.
package main

import (
	"fmt"
	"os"
)

// Version is set via ldflags at build time.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
