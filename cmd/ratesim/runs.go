package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/export"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/stats"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/storage"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/viz"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tPATHS\tSTEPS\tHORIZON\tMEAN r(T)\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%g\t%.6f\t%v\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Params.NPaths,
			run.Params.Steps,
			run.Params.Horizon,
			run.Terminal.Mean,
			run.Elapsed.Round(time.Millisecond),
		)
	}

	return w.Flush()
}

// loadSummary recomputes the band of a stored run from its paths.
func loadSummary(st *storage.Store, runID string) (*storage.RunMetadata, stats.Summary, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	ens, err := st.LoadEnsemble(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, stats.Aggregate(ens, meta.Params.ConfInterval), nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}

	meta, summary, err := loadSummary(st, runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", viz.Specification(meta.Params))
	fmt.Printf("paths: %d, points: %d\n\n", meta.Params.NPaths, len(summary))
	fmt.Println(viz.BandChart(summary, width, height, bandCaption(meta.Params.ConfInterval)))

	if showPaths > 0 {
		ens, err := st.LoadEnsemble(runID)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Print(viz.PathsPlot(ens, width, height, showPaths))
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	path, err := st.PathsFile(runID)
	if err != nil {
		return err
	}
	return copyFile(os.Stdout, path)
}

func exportSummary(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	path, err := st.SummaryFile(runID)
	if err != nil {
		return err
	}
	return copyFile(os.Stdout, path)
}

func copyFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", storage.ErrNotFound, path)
		}
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}

	meta, summary, err := loadSummary(st, runID)
	if err != nil {
		return err
	}

	return export.WriteJSON(os.Stdout, export.Report{
		RunID:    meta.ID,
		Params:   meta.Params,
		Terminal: meta.Terminal,
		Summary:  summary,
	})
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}

	_, summary, err := loadSummary(st, runID)
	if err != nil {
		return err
	}
	return export.FanChartSVG(os.Stdout, summary, width, height)
}
