package main

import (
	"fmt"
	"os"
)

const usageText = `foreman is a terminal dashboard for reviewing and approving work orders.

Usage:
  foreman [command]

Commands:
  ui       run the dashboard (default)
  config   print the effective configuration
  help     show help

Flags:
  -h, --help   show help

Configuration is read from ~/.foreman/config.toml; UI state and the auth
token live under the same directory.
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	command := "ui"
	if len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "-h", "--help", "help":
		printUsage()
		return
	case "ui":
		if err := runUI(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "config":
		if err := runConfig(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		printUsage()
		os.Exit(2)
	}
}
