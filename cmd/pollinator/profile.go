package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

func profileCmd() *cobra.Command {
	var (
		iterations int
		cpuProfile string
	)

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Time repeated default calculations and optionally write a CPU profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if iterations < 1 {
				return fmt.Errorf("iterations must be at least 1, got %d", iterations)
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if cpuProfile != "" {
				f, err := os.Create(cpuProfile)
				if err != nil {
					return fmt.Errorf("failed to create profile: %w", err)
				}
				defer f.Close()
				if err := pprof.StartCPUProfile(f); err != nil {
					return fmt.Errorf("failed to start profile: %w", err)
				}
				defer pprof.StopCPUProfile()
			}

			out := cmd.OutOrStdout()
			times := make([]float64, iterations)
			for i := range times {
				start := time.Now()
				if _, err := a.Service.CalculateDefault(cmd.Context()); err != nil {
					return err
				}
				times[i] = time.Since(start).Seconds()
				fmt.Fprintf(out, "Iteration %d/%d: %.4f seconds\n", i+1, iterations, times[i])
			}

			mean := stat.Mean(times, nil)
			fmt.Fprintf(out, "Average execution time: %.4f seconds\n", mean)
			if iterations > 1 {
				fmt.Fprintf(out, "Standard deviation: %.4f seconds\n", stat.StdDev(times, nil))
			}
			if cpuProfile != "" {
				fmt.Fprintf(out, "CPU profile written to %s (inspect with go tool pprof)\n", cpuProfile)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&iterations, "iterations", "n", 3, "number of calculations to time")
	cmd.Flags().StringVar(&cpuProfile, "cpuprofile", "", "write a CPU profile to this file")
	return cmd
}
