package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jengzang/pollinator-abundance/internal/app"
	"github.com/jengzang/pollinator-abundance/internal/fixture"
	"github.com/jengzang/pollinator-abundance/internal/models"
	"github.com/jengzang/pollinator-abundance/internal/repository"
)

type seedWriter struct {
	*repository.ZoneRepository
	*repository.SurfaceRepository
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Migrate the database and load the reference dataset into it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.Open(cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			store := fixture.Default()
			w := seedWriter{repository.NewZoneRepository(a.DB), repository.NewSurfaceRepository(a.DB)}
			if err := store.SeedInto(cmd.Context(), w); err != nil {
				return err
			}

			cas, err := w.ListZones(cmd.Context(), models.ZoneKindCA)
			if err != nil {
				return err
			}
			rois, err := w.ListZones(cmd.Context(), models.ZoneKindROI)
			if err != nil {
				return err
			}

			_, rasters := store.Rasters()
			logger.Info("Database seeded",
				zap.String("path", cfg.DBPath),
				zap.Int("conservation_areas", len(cas)),
				zap.Int("regions_of_interest", len(rois)),
				zap.Int("rasters", len(rasters)))
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s with %d conservation areas, %d regions of interest and %d rasters\n",
				cfg.DBPath, len(cas), len(rois), len(rasters))
			return nil
		},
	}
}
