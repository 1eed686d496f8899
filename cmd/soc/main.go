package main

import (
	"os"

	"github.com/madHatter106/state-of-the-climate/cmd/soc/commands"
)

// main is the entry point for the soc CLI
// ⭐ single CLI entry point: go run ./cmd/soc [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
