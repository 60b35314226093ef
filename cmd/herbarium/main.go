// Package main provides the entry point for the herbarium CLI tool.
package main

import "github.com/openherb/herbarium/cmd/herbarium/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cmd.Execute(version, commit, date, builtBy)
}
