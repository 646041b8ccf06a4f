// Package main is the entry point for the seq2many CLI.
package main

import "seq2many.dev/pkg/seq2many/cmd"

func main() {
	cmd.Execute()
}
