package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/wellflow-xyz/go-wellflow/schedule"
)

func create(args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	output := fs.String("output", "case.json", "Output file for the case")
	name := fs.String("name", "demo", "Case name")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: wellflow create [options]

Write a starter case: a small pressure field, one rate-controlled producer
and one group-controlled injector over two report steps.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	producer := schedule.Well{
		Name:     "PROD1",
		Producer: true,
		Status:   schedule.StatusOpen,
		ALQ:      0,
		Connections: []schedule.Connection{
			{CellIndex: 0, SatNum: 1, Open: true, TransFactor: 1.2},
			{CellIndex: 1, SatNum: 1, Open: true, TransFactor: 1.0},
		},
		ProductionTargets: schedule.ProductionTargets{
			CMode:    schedule.ProducerORAT,
			OilRate:  schedule.Target{Value: 800},
			BhpLimit: schedule.Target{Value: 120e5},
		},
	}
	injector := schedule.Well{
		Name:     "INJ1",
		Injector: true,
		Status:   schedule.StatusOpen,
		Connections: []schedule.Connection{
			{CellIndex: 3, SatNum: 1, Open: true, TransFactor: 0.8},
		},
		InjectionTargets: schedule.InjectionTargets{
			CMode:       schedule.InjectorRATE,
			Type:        schedule.InjectWater,
			SurfaceRate: schedule.Target{Value: 900},
			Temperature: 320,
		},
	}

	secondStep := schedule.Step{
		Wells: []schedule.Well{producer, injector},
		WellEvents: map[string]schedule.Events{
			"PROD1": schedule.ProductionUpdate,
		},
	}
	secondStep.Wells[0].ProductionTargets.OilRate = schedule.Target{Value: 600}

	c := caseFile{
		Name:          *name,
		Phases:        []string{"water", "oil", "gas"},
		CellPressures: []float64{220e5, 218e5, 215e5, 230e5},
		Steps: []schedule.Step{
			{
				Wells: []schedule.Well{producer, injector},
				WellEvents: map[string]schedule.Events{
					"PROD1": schedule.NewWell,
					"INJ1":  schedule.NewWell,
				},
			},
			secondStep,
		},
	}

	data, err := json.MarshalIndent(&c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode case: %w", err)
	}
	if err := os.WriteFile(*output, data, 0644); err != nil {
		return fmt.Errorf("write case: %w", err)
	}
	fmt.Printf("Case written to %s\n", *output)
	return nil
}
