package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/wellflow-xyz/go-wellflow/report"
	"github.com/wellflow-xyz/go-wellflow/store"
	"github.com/wellflow-xyz/go-wellflow/wellstate"
)

func run(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	output := fs.String("output", "", "Output file for the per-step reports (JSON)")
	dbPath := fs.String("db", "", "SQLite database to persist the reports to")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: wellflow run <case.json> [options]

Advance the well state through every report step of the case: initialize
from the schedule, carry state across steps, and extract a report per step.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Write all reports to a file
  wellflow run case.json --output reports.json

  # Persist reports to SQLite instead
  wellflow run case.json --db runs.db
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("case file required")
	}

	c, err := loadCase(fs.Arg(0))
	if err != nil {
		return err
	}
	pu, err := c.phaseUsage()
	if err != nil {
		return err
	}
	st := c.summaryState()

	var db *store.Store
	runID := ""
	if *dbPath != "" {
		db, err = store.New(*dbPath)
		if err != nil {
			return fmt.Errorf("open run database: %w", err)
		}
		defer db.Close()
		runID = uuid.New().String()
		if err := db.CreateRun(runID, c.Name); err != nil {
			return fmt.Errorf("create run: %w", err)
		}
	}

	steps := make(map[int]report.Wells, len(c.Steps))
	var prev *wellstate.WellState
	for i := range c.Steps {
		step := &c.Steps[i]
		infos, perfs := stepInputs(step)

		ws := wellstate.New(pu)
		if err := ws.Init(c.CellPressures, step, infos, prev, perfs, st); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if hasMultiSegment(step) {
			ws.InitSegments(step.Wells, prev)
		}

		wells, err := ws.Report(nil, nil)
		if err != nil {
			return fmt.Errorf("step %d report: %w", i, err)
		}
		steps[i] = wells
		if db != nil {
			if err := db.SaveStepReport(runID, i, wells); err != nil {
				return fmt.Errorf("step %d persist: %w", i, err)
			}
		}

		fmt.Printf("step %d: %d wells reported\n", i, len(wells))
		prev = ws
	}

	if db != nil {
		if err := db.EndRun(runID, len(c.Steps)); err != nil {
			return fmt.Errorf("end run: %w", err)
		}
		fmt.Printf("Run %s stored in %s\n", runID, *dbPath)
	}

	if *output != "" {
		data, err := json.MarshalIndent(steps, "", "  ")
		if err != nil {
			return fmt.Errorf("encode reports: %w", err)
		}
		if err := os.WriteFile(*output, data, 0644); err != nil {
			return fmt.Errorf("write reports: %w", err)
		}
		fmt.Printf("Reports written to %s\n", *output)
	}
	return nil
}
