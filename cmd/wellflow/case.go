package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/wellflow-xyz/go-wellflow/parallel"
	"github.com/wellflow-xyz/go-wellflow/phase"
	"github.com/wellflow-xyz/go-wellflow/schedule"
	"github.com/wellflow-xyz/go-wellflow/summary"
	"github.com/wellflow-xyz/go-wellflow/wellstate"
)

// caseFile is the on-disk description of a run: the active phases, the grid
// pressure field and the schedule steps to advance through.
type caseFile struct {
	Name          string             `json:"name"`
	Phases        []string           `json:"phases"`
	CellPressures []float64          `json:"cell_pressures"`
	Summary       map[string]float64 `json:"summary,omitempty"`
	Steps         []schedule.Step    `json:"steps"`
}

// loadCase reads and decodes a case file.
func loadCase(path string) (*caseFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read case: %w", err)
	}
	var c caseFile
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse case: %w", err)
	}
	if len(c.Steps) == 0 {
		return nil, fmt.Errorf("case has no steps")
	}
	return &c, nil
}

// phaseUsage builds the phase usage from the case's phase names.
func (c *caseFile) phaseUsage() (phase.Usage, error) {
	if len(c.Phases) == 0 {
		return phase.AllPhases(), nil
	}
	phases := make([]phase.Phase, 0, len(c.Phases))
	for _, name := range c.Phases {
		switch name {
		case "water":
			phases = append(phases, phase.Water)
		case "oil":
			phases = append(phases, phase.Oil)
		case "gas":
			phases = append(phases, phase.Gas)
		default:
			return phase.Usage{}, fmt.Errorf("unknown phase %q", name)
		}
	}
	return phase.NewUsage(phases...), nil
}

// summaryState builds the summary state from the case's named values.
func (c *caseFile) summaryState() *summary.State {
	st := summary.New()
	for k, v := range c.Summary {
		st.Set(k, v)
	}
	return st
}

// stepInputs derives the per-well initialization inputs of one step in a
// single-process run: partition descriptors and the open-connection
// perforation data.
func stepInputs(step *schedule.Step) ([]*parallel.WellInfo, [][]wellstate.PerforationData) {
	infos := make([]*parallel.WellInfo, len(step.Wells))
	perfs := make([][]wellstate.PerforationData, len(step.Wells))
	for i := range step.Wells {
		def := &step.Wells[i]
		infos[i] = parallel.SerialWellInfo(def.Name)
		for _, conn := range def.Connections {
			if !conn.Open {
				continue
			}
			perfs[i] = append(perfs[i], wellstate.PerforationData{
				CellIndex:   conn.CellIndex,
				SatNum:      conn.SatNum,
				TransFactor: conn.TransFactor,
			})
		}
	}
	return infos, perfs
}

// hasMultiSegment reports whether any well in the step carries a segment
// network.
func hasMultiSegment(step *schedule.Step) bool {
	for i := range step.Wells {
		if step.Wells[i].IsMultiSegment() {
			return true
		}
	}
	return false
}
