package main

import (
	"fmt"
	"os"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/experiment"
)

func benchWorkers(cmd *cobra.Command, args []string) error {
	base, err := resolveParams(cmd, &params, "", "")
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	counts := []int{1}
	for n := 2; n < runtime.GOMAXPROCS(0); n *= 2 {
		counts = append(counts, n)
	}
	if procs := runtime.GOMAXPROCS(0); procs > 1 {
		counts = append(counts, procs)
	}

	fmt.Printf("benchmarking %d paths x %d steps\n\n", base.NPaths, base.Steps)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORKERS\tTIME\tSTEPS/SEC\tSPEEDUP")

	exp := experiment.New()
	var serial float64
	for _, n := range counts {
		p := base
		p.Workers = n
		out, err := exp.Run(ctx, p)
		if err != nil {
			return err
		}

		secs := out.Elapsed.Seconds()
		if n == 1 {
			serial = secs
		}
		stepsPerSec := float64(p.NPaths*p.Steps) / secs
		fmt.Fprintf(w, "%d\t%v\t%.0f\t%.2fx\n", n, out.Elapsed, stepsPerSec, serial/secs)
	}

	return w.Flush()
}
