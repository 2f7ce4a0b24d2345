// main package for winnow command-line tool
// Package main is the entry point for the winnow CLI.
package main

import "winnow.dev/pkg/winnow/cmd"

func main() {
	cmd.Execute()
}
