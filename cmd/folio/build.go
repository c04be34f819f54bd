package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

var buildOut string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site as static files",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		app := folio.New(cfg)
		defer app.Close()

		report, err := app.Build(cmd.Context(), buildOut)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Built %d pages and %d posts into %s (%d images optimized)\n",
			len(report.Pages), report.Posts, buildOut, report.ImagesOptimized)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "dist", "output directory")
	rootCmd.AddCommand(buildCmd)
}
