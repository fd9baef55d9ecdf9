// Package main is the entry point for the mockhoist CLI.
package main

import "mockhoist.dev/pkg/mockhoist/cmd"

func main() {
	cmd.Execute()
}
