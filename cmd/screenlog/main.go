// Package main is the single-binary entrypoint for screenlog.
// screenlog tracks your movies, series, and books locally and turns
// your watch history into achievements.
package main

import "github.com/screenlog/screenlog/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
