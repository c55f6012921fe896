package cli

import (
	"strconv"
	"strings"

	"github.com/geoboxdev/geobox/gpkg/catalog"
	"github.com/geoboxdev/geobox/gpkg/feature"
	"github.com/geoboxdev/geobox/gpkg/storage"
	"github.com/geoboxdev/geobox/pkg/errors"
	"github.com/go-spatial/geom"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var ErrInvalidBBox = errors.MustNewCode("cli.invalid_bbox")

var (
	schemaPath    string
	bboxFlag      string
	featureIDFlag string
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Manage feature tables",
	Long: `Manage vector feature tables in a container.

Subcommands:
- create:   create a feature table from a schema definition file
- describe: show a table's merged fields and geometry info
- list:     list tables registered in the contents registry

Examples:
  geobox table create data.gpkg roads --schema roads.json --bbox -10,40,5,52
  geobox table describe data.gpkg roads
  geobox table list data.gpkg`,
}

var tableCreateCmd = &cobra.Command{
	Use:   "create <file> <name>",
	Short: "Create a feature table from a schema file",
	Args:  cobra.ExactArgs(2),
	RunE:  runTableCreate,
}

var tableDescribeCmd = &cobra.Command{
	Use:   "describe <file> <name>",
	Short: "Show a table's fields, bounds, and geometry info",
	Args:  cobra.ExactArgs(2),
	RunE:  runTableDescribe,
}

var tableListCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "List tables in the contents registry",
	Args:  cobra.ExactArgs(1),
	RunE:  runTableList,
}

func runTableCreate(cmd *cobra.Command, args []string) error {
	path, name := args[0], args[1]

	fs, err := loadFeatureSchema(schemaPath)
	if err != nil {
		return err
	}

	extent, err := parseBBox(bboxFlag)
	if err != nil {
		return err
	}

	db, err := storage.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	cat := catalog.New(db)
	if err := cat.Bootstrap(cmd.Context()); err != nil {
		return err
	}

	var opts []feature.Option
	if featureIDFlag != "" {
		opts = append(opts, feature.WithFeatureIDColumn(featureIDFlag))
	}
	table := feature.New(db, cat, logger, name, opts...)

	if err := table.Create(cmd.Context(), fs, extent); err != nil {
		return err
	}

	pterm.Success.Printfln("Feature table %s ready in %s", table.Name(), path)
	return nil
}

func runTableDescribe(cmd *cobra.Command, args []string) error {
	path, name := args[0], args[1]

	db, err := storage.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	table := feature.New(db, catalog.New(db), logger, name)
	ctx := cmd.Context()

	fields, err := table.Fields(ctx)
	if err != nil {
		return err
	}
	info, err := table.GeometryInfo(ctx)
	if err != nil {
		return err
	}

	rows := pterm.TableData{{"Column", "Type", "Binding", "Role", "Title", "Constraint"}}
	for _, f := range fields {
		role := ""
		switch {
		case f.FeatureID:
			role = "feature id"
		case f.Geometry:
			role = "geometry"
		}
		rows = append(rows, []string{f.Name, f.StorageType, f.Binding.String(), role, f.Title, f.ConstraintName})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		return err
	}

	pterm.Printfln("Geometry: %s (%s), srs %d (%s), z=%s m=%s",
		info.ColumnName, info.GeometryTypeName, info.SRSID, info.Organization, info.Z, info.M)

	if bounds := table.Bounds(ctx); bounds != nil {
		pterm.Printfln("Bounds: (%g, %g) to (%g, %g)", bounds.MinX(), bounds.MinY(), bounds.MaxX(), bounds.MaxY())
	}
	if ts, ok := table.LastChange(ctx); ok {
		pterm.Printfln("Last change: %s", ts.UTC().Format("2006-01-02 15:04:05 UTC"))
	}
	return nil
}

func runTableList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(args[0])
	if err != nil {
		return err
	}
	defer db.Close()

	rs, err := catalog.New(db).ListContents(cmd.Context())
	if err != nil {
		return err
	}

	rows := pterm.TableData{{"Table", "Type", "SRS", "Last change", "Description"}}
	for i := 0; i < rs.Len(); i++ {
		rows = append(rows, []string{
			rs.GetString(i, "table_name"),
			rs.GetString(i, "data_type"),
			rs.GetString(i, "srs_id"),
			rs.GetString(i, "last_change"),
			rs.GetString(i, "description"),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

// parseBBox parses "minx,miny,maxx,maxy". An empty flag means no extent.
func parseBBox(s string) (*geom.Extent, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, errors.Newf(ErrInvalidBBox, "bbox must be minx,miny,maxx,maxy, got %q", s)
	}
	var vals [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidBBox, err, "bbox component %d is not a number", i+1)
		}
		vals[i] = v
	}
	if vals[0] > vals[2] || vals[1] > vals[3] {
		return nil, errors.Newf(ErrInvalidBBox, "bbox min exceeds max: %s", s)
	}
	extent := geom.Extent(vals)
	return &extent, nil
}

func init() {
	tableCreateCmd.Flags().StringVar(&schemaPath, "schema", "", "path to the schema definition JSON file (required)")
	tableCreateCmd.MarkFlagRequired("schema")
	tableCreateCmd.Flags().StringVar(&bboxFlag, "bbox", "", "informative extent as minx,miny,maxx,maxy")
	tableCreateCmd.Flags().StringVar(&featureIDFlag, "feature-id", "", "feature-id column name (default feature_id)")

	tableCmd.AddCommand(tableCreateCmd)
	tableCmd.AddCommand(tableDescribeCmd)
	tableCmd.AddCommand(tableListCmd)
	rootCmd.AddCommand(tableCmd)
}
