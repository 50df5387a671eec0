package main

import (
	"github.com/spf13/cobra"
	"srer/pkg/gages"
	"srer/pkg/logger"
	"srer/pkg/ui"
)

var gagesCmd = &cobra.Command{
	Use:   "gages",
	Short: "List rain gages from the GraphQL endpoint",
	Long: `Query the rain-gage GraphQL endpoint that backs the station map and print
one row per gage with its name, code and coordinates.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, true)
		if err != nil {
			return err
		}

		client := gages.NewClient(cfg.Gages.Endpoint, cfg.Gages.Timeout, logger.GetLogger())
		list, err := client.FetchGages(cmd.Context())
		if err != nil {
			logger.WithError(err).WithField("endpoint", cfg.Gages.Endpoint).Error("Failed to fetch rain gages")
			return err
		}

		ui.RenderGages(cmd.OutOrStdout(), list)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gagesCmd)
	gagesCmd.Flags().String("endpoint", "", "GraphQL endpoint URL")
}
