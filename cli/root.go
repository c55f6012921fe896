// Package cli implements the geobox command tree.
package cli

import (
	"github.com/geoboxdev/geobox/gpkg/config"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "geobox",
	Short: "Manage vector feature tables in a GeoPackage container",
	Long: `Geobox manages vector feature tables inside a GeoPackage-style SQLite
container: it creates the system catalog, creates feature tables from schema
definitions, and inspects their merged schema and geometry metadata.

Examples:
  geobox init data.gpkg
  geobox table create data.gpkg roads --schema roads.json --bbox 0,0,10,10
  geobox table describe data.gpkg roads
  geobox srs list data.gpkg`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgFile != "" {
			cfg, err = config.LoadConfig(cfgFile)
			if err != nil {
				return err
			}
		} else {
			cfg = config.LoadDefaultConfig()
		}

		logger, err = config.SetupLogger(cfg)
		if err != nil {
			return err
		}
		logger = logger.With().Str("session", uuid.NewString()).Logger()
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a geobox config file")
}
