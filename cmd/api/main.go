// Package main is the entry point for the club directory. It wires
// dependencies together and dispatches to the serve, migrate, import and find
// commands. No business logic belongs here.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
