package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wellflow-xyz/go-wellflow/schedule"
	"github.com/wellflow-xyz/go-wellflow/wellstate"
)

func validate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: wellflow validate <case.json>

Check the case's well definitions: phase names, well roles, connection
cell references and segment topology. Exits non-zero on the first error.
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

	numCells := len(c.CellPressures)
	wells := 0
	for i := range c.Steps {
		step := &c.Steps[i]
		for w := range step.Wells {
			def := &step.Wells[w]
			for ci, conn := range def.Connections {
				if conn.CellIndex < 0 || conn.CellIndex >= numCells {
					return fmt.Errorf("step %d well %s: connection %d references cell %d outside the %d-cell grid",
						i, def.Name, ci, conn.CellIndex, numCells)
				}
				if def.IsMultiSegment() && conn.Open && def.Segments.NumberToIndex(conn.Segment) < 0 {
					return fmt.Errorf("step %d well %s: connection %d references unknown segment %d",
						i, def.Name, ci, conn.Segment)
				}
			}
			if def.IsMultiSegment() {
				if err := validateSegments(def.Segments); err != nil {
					return fmt.Errorf("step %d well %s: %w", i, def.Name, err)
				}
			}
		}

		// A dry initialization catches role errors and bad control setups.
		infos, perfs := stepInputs(step)
		ws := wellstate.New(pu)
		if err := ws.Init(c.CellPressures, step, infos, nil, perfs, st); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		wells += len(step.Wells)
	}

	fmt.Printf("Case %s: %d steps, %d well definitions, %d cells: OK\n",
		c.Name, len(c.Steps), wells, numCells)
	return nil
}

// validateSegments checks that the segment topology is a tree rooted at
// the top segment: exactly one segment without an outlet, first in the
// set, and every outlet referencing an existing segment.
func validateSegments(set *schedule.SegmentSet) error {
	if set.Segments[0].Outlet != 0 {
		return fmt.Errorf("first segment %d is not the top segment", set.Segments[0].Number)
	}
	for i := 1; i < len(set.Segments); i++ {
		seg := set.Segments[i]
		if seg.Outlet == 0 {
			return fmt.Errorf("segment %d has no outlet but is not the top segment", seg.Number)
		}
		if set.NumberToIndex(seg.Outlet) < 0 {
			return fmt.Errorf("segment %d references unknown outlet %d", seg.Number, seg.Outlet)
		}
	}
	return nil
}
