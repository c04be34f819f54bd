package main

import (
	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

var (
	siteDir string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "A portfolio site engine built with Go and Echo",
	Long: `folio serves a personal portfolio from a site directory: static page
shells, shared header and footer components and one content document with
projects, research, achievements, experience, education and blog posts.

Configuration is read from <site>/config.yaml and FOLIO_* environment
variables, e.g. FOLIO_BACKEND_URL or FOLIO_SESSION_SECRET.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&siteDir, "site", "s", ".", "site directory")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "development logging")
}

// loadConfig reads the site config and applies the global flags.
func loadConfig() (folio.SiteConfig, error) {
	cfg, err := folio.LoadConfig(siteDir)
	if err != nil {
		return cfg, err
	}
	if debug {
		cfg.Debug = true
	}
	return cfg, nil
}
