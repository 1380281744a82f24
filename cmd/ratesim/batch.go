package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/automation"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/experiment"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/storage"
)

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	var st *storage.Store
	if !noSave {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Printf("%s\n", scenario.Description)
	}
	fmt.Println()

	runner := automation.NewRunner(experiment.New(), st, log)
	steps, sweeps, runErr := runner.Run(ctx, scenario)

	if len(steps) > 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "STEP\tRUN\tMEDIAN r(T)\tLOWER\tUPPER\tMEAN\tSTD DEV")
		for _, s := range steps {
			final := s.Summary[len(s.Summary)-1]
			runID := s.RunID
			if runID == "" {
				runID = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\n",
				s.Name, runID, final.Median, final.Lower, final.Upper, s.Terminal.Mean, s.Terminal.StdDev)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	for _, sweep := range sweeps {
		if len(sweep) == 0 {
			continue
		}
		fmt.Printf("\nsweep over %s\n", sweep[0].Param)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "VALUE\tMEDIAN r(T)\tLOWER\tUPPER\tNEGATIVE")
		for _, r := range sweep {
			fmt.Fprintf(w, "%g\t%.6f\t%.6f\t%.6f\t%.1f%%\n",
				r.Value, r.FinalMedian, r.FinalLower, r.FinalUpper, 100*r.Terminal.NegativeShare)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	return runErr
}
