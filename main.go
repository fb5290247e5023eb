package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/rocketscienceinc/tictactoe-history/internal/cmd"
)

// main - is the entry point of the application. It runs the command given on the command line.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	root := cmd.Root()
	root.SetArgs(os.Args[1:])

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}
