package cli

import (
	"github.com/geoboxdev/geobox/gpkg/catalog"
	"github.com/geoboxdev/geobox/gpkg/storage"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var srsCmd = &cobra.Command{
	Use:   "srs",
	Short: "Inspect the spatial-reference registry",
}

var srsListCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "List registered spatial reference systems",
	Args:  cobra.ExactArgs(1),
	RunE:  runSRSList,
}

func runSRSList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(args[0])
	if err != nil {
		return err
	}
	defer db.Close()

	rs, err := catalog.New(db).ListSpatialRefSys(cmd.Context())
	if err != nil {
		return err
	}

	rows := pterm.TableData{{"SRS ID", "Name", "Organization", "Org ID"}}
	for i := 0; i < rs.Len(); i++ {
		rows = append(rows, []string{
			rs.GetString(i, "srs_id"),
			rs.GetString(i, "srs_name"),
			rs.GetString(i, "organization"),
			rs.GetString(i, "organization_coordsys_id"),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func init() {
	srsCmd.AddCommand(srsListCmd)
	rootCmd.AddCommand(srsCmd)
}
