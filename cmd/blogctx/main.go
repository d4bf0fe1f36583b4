// ABOUTME: Main entry point for blogctx, a preview tool for blog view contexts
// ABOUTME: Builds index and article contexts from the live content API and prints them

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
