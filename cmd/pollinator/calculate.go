package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jengzang/pollinator-abundance/internal/models"
)

func calculateCmd() *cobra.Command {
	var (
		req    models.CalculationRequest
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Run one calculation (the configured default scenario unless ids are given) and report its timing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			defaults := a.Service.Defaults()
			if !cmd.Flags().Changed("plantation") {
				req.PlantationID = defaults.PlantationID
			}
			if !cmd.Flags().Changed("roi") {
				req.ROIID = defaults.ROIID
			}
			if !cmd.Flags().Changed("ca") {
				req.CAID = defaults.CAID
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Starting pollinator abundance calculation...")
			start := time.Now()
			result, err := a.Service.Calculate(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Pollinator abundance calculation completed in %.2f seconds.\n", time.Since(start).Seconds())

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			fmt.Fprintln(out, "Result keys: [ratio_x ratio_y width_km_ca height_km_ca alignment_point_x alignment_point_y result_values]")
			return nil
		},
	}

	cmd.Flags().Int64Var(&req.PlantationID, "plantation", 0, "plantation id")
	cmd.Flags().Int64Var(&req.ROIID, "roi", 0, "region of interest id")
	cmd.Flags().Int64Var(&req.CAID, "ca", 0, "conservation area id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}
