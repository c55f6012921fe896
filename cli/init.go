package cli

import (
	"github.com/geoboxdev/geobox/gpkg/catalog"
	"github.com/geoboxdev/geobox/gpkg/storage"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init <file>",
	Short: "Create a container and bootstrap its system catalog",
	Long: `Create (or open) a GeoPackage container file and create the system
catalog tables: the contents registry, the geometry-column registry, the
column-metadata registry, the constraint registry, and the spatial-reference
registry seeded with the default reference systems.

Running init on an existing container is safe; the bootstrap is idempotent.`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := args[0]

	db, err := storage.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := catalog.New(db).Bootstrap(cmd.Context()); err != nil {
		return err
	}

	logger.Info().Str("path", path).Msg("container initialized")
	pterm.Success.Printfln("Initialized container %s", path)
	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
