package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/experiment"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/logger"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/storage"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/viz"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	p, err := resolveParams(cmd, &params, preset, configFile)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	log.Info("simulation started",
		logger.Int("paths", p.NPaths),
		logger.Int("steps", p.Steps),
		logger.Float64("horizon", p.Horizon),
		logger.Uint64("seed", p.Seed),
	)

	out, err := experiment.Simulate(ctx, p)
	if err != nil {
		log.Error("simulation failed", logger.Error(err))
		return err
	}
	log.Info("simulation finished", logger.Duration("elapsed", out.Elapsed))

	title := "unsaved run"
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(out)
		if err != nil {
			return err
		}
		log.Debug("run stored", logger.String("run_id", runID), logger.String("dir", dataDir))
		title = "run " + runID
	}

	fmt.Println(viz.Report(title, p, out.Terminal))
	fmt.Printf("completed in %v (seed %d)\n\n", out.Elapsed, p.Seed)
	fmt.Println(viz.BandChart(out.Summary, 80, 15, bandCaption(p.ConfInterval)))
	if showPaths > 0 {
		fmt.Println()
		fmt.Print(viz.PathsPlot(out.Ensemble, 80, 15, showPaths))
	}

	return nil
}

func bandCaption(conf float64) string {
	return fmt.Sprintf("median and %g%% band", 100*conf)
}
