package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wellflow-xyz/go-wellflow/report"
	"github.com/wellflow-xyz/go-wellflow/store"
)

func reportCmd(args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	dbPath := fs.String("db", "", "SQLite run database (required)")
	step := fs.Int("step", -1, "Show the full report of one step")
	well := fs.String("well", "", "Show the headline history of one well")
	export := fs.Bool("export", false, "Export the whole run as JSON to stdout")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: wellflow report --db <runs.db> <run-id> [options]

Inspect the stored reports of one run.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dbPath == "" {
		fs.Usage()
		return fmt.Errorf("--db required")
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("run id required")
	}
	runID := fs.Arg(0)

	db, err := store.New(*dbPath)
	if err != nil {
		return fmt.Errorf("open run database: %w", err)
	}
	defer db.Close()

	if *export {
		data, err := db.ExportRunJSON(runID)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if *well != "" {
		history, err := db.WellHistory(runID, *well)
		if err != nil {
			return err
		}
		if len(history) == 0 {
			return fmt.Errorf("no samples for well %s in run %s", *well, runID)
		}
		fmt.Printf("%-6s %-14s %-14s %-14s %-14s %-14s\n", "step", "bhp", "thp", "oil", "water", "gas")
		for _, s := range history {
			fmt.Printf("%-6d %-14.6g %-14.6g %-14.6g %-14.6g %-14.6g\n",
				s.Step, s.Bhp, s.Thp, s.OilRate, s.WatRate, s.GasRate)
		}
		return nil
	}

	if *step < 0 {
		fs.Usage()
		return fmt.Errorf("--step, --well or --export required")
	}
	wells, err := db.StepReport(runID, *step)
	if err != nil {
		return err
	}
	if len(wells) == 0 {
		return fmt.Errorf("no report for step %d of run %s", *step, runID)
	}
	for name, w := range wells {
		mode := w.Control.Injector.String()
		kind := "injector"
		if w.Control.IsProducer {
			mode = w.Control.Producer.String()
			kind = "producer"
		}
		fmt.Printf("%s (%s, %s): bhp=%.6g thp=%.6g oil=%.6g water=%.6g gas=%.6g\n",
			name, kind, mode, w.Bhp, w.Thp,
			w.Rates.Get(report.OilRate), w.Rates.Get(report.WaterRate), w.Rates.Get(report.GasRate))
		for _, conn := range w.Connections {
			fmt.Printf("  cell %d: pressure=%.6g oil=%.6g\n",
				conn.Index, conn.Pressure, conn.Rates.Get(report.OilRate))
		}
	}
	return nil
}

func listRuns(args []string) error {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	dbPath := fs.String("db", "", "SQLite run database (required)")
	limit := fs.Int("limit", 20, "Maximum number of runs to list")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: wellflow runs --db <runs.db> [options]

List recent runs in the database.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dbPath == "" {
		fs.Usage()
		return fmt.Errorf("--db required")
	}

	db, err := store.New(*dbPath)
	if err != nil {
		return fmt.Errorf("open run database: %w", err)
	}
	defer db.Close()

	runs, err := db.RecentRuns(*limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}
	for _, r := range runs {
		ended := "running"
		if r.EndedAt != nil {
			ended = r.EndedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Printf("%s  %-20s %d steps  started %s  ended %s\n",
			r.ID, r.CaseName, r.TotalSteps,
			r.StartedAt.Format("2006-01-02 15:04:05"), ended)
	}
	return nil
}
