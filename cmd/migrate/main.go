package main

import (
	"os"
	"suburban/config"
	"suburban/helper"
	"suburban/shared/logger"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	cfg := config.Get()
	logger.InitLogger(cfg)

	var dbFile string

	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the hotel database schema",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if dbFile != "" {
				cfg.DB.SQLite.Path = dbFile
			}
		},
	}

	root.PersistentFlags().StringVar(&dbFile, "db", "", "database file, overrides DB_SQLITE_FILE")

	for _, action := range []struct {
		name  string
		short string
	}{
		{helper.ActionUp, "Apply all pending migrations"},
		{helper.ActionDown, "Roll back the latest migration"},
		{helper.ActionStepUp, "Apply the next pending migration"},
		{helper.ActionDrop, "Roll back every migration"},
	} {
		root.AddCommand(&cobra.Command{
			Use:   action.name,
			Short: action.short,
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return helper.Runner(cfg, action.name)
			},
		})
	}

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("migration failed")
		os.Exit(1)
	}
}
