package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "create":
		if err := create(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "validate":
		if err := validate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "run":
		if err := run(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "report":
		if err := reportCmd(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "runs":
		if err := listRuns(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("wellflow version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`wellflow - well state initialization and reporting tool

Usage:
  wellflow <command> [options]

Commands:
  create     Create a case file from a template
  validate   Validate case file well definitions
  run        Advance the well state through all report steps
  report     Show stored reports from a run database
  runs       List recent runs in a run database
  help       Show this help message
  version    Show version information

Examples:
  # Create a starter case
  wellflow create --output case.json

  # Validate the well definitions
  wellflow validate case.json

  # Advance through all steps, write reports
  wellflow run case.json --output reports.json

  # Persist reports to SQLite and inspect them
  wellflow run case.json --db runs.db
  wellflow runs --db runs.db
  wellflow report --db runs.db <run-id> --step 0

For command-specific help, run:
  wellflow <command> --help`)
}
