// Package main is the entry point for the csreplay CLI tool, which decodes
// CS2 demo files into an analytical record of enriched events and derived
// tactical events.
package main

import "github.com/pable/cs-replay-analyzer/cmd"

func main() {
	cmd.Execute()
}
