package catalog

import "github.com/uptrace/bun"

// System catalog table names, fixed by the container format.
const (
	ContentsTable              = "gpkg_contents"
	GeometryColumnsTable       = "gpkg_geometry_columns"
	DataColumnsTable           = "gpkg_data_columns"
	DataColumnConstraintsTable = "gpkg_data_column_constraints"
	SpatialRefSysTable         = "gpkg_spatial_ref_sys"
)

// DataTypeFeatures is the contents-registry type tag for vector feature
// tables.
const DataTypeFeatures = "features"

// Contents is one row of the contents registry: one entry per content table
// with its spatial extent and last-change timestamp.
type Contents struct {
	bun.BaseModel `bun:"table:gpkg_contents"`

	TableName   string   `bun:"table_name,pk"`
	DataType    string   `bun:"data_type,notnull"`
	Identifier  string   `bun:"identifier,unique"`
	Description string   `bun:"description,default:''"`
	LastChange  string   `bun:"last_change,notnull"`
	MinX        *float64 `bun:"min_x"`
	MinY        *float64 `bun:"min_y"`
	MaxX        *float64 `bun:"max_x"`
	MaxY        *float64 `bun:"max_y"`
	SRSID       *int     `bun:"srs_id"`
}

// GeometryColumns is one row of the geometry-column registry. The container
// format allows exactly one row per feature table.
type GeometryColumns struct {
	bun.BaseModel `bun:"table:gpkg_geometry_columns"`

	TableName        string `bun:"table_name,pk"`
	ColumnName       string `bun:"column_name,notnull"`
	GeometryTypeName string `bun:"geometry_type_name,notnull"`
	SRSID            int    `bun:"srs_id,notnull"`
	Z                int    `bun:"z,notnull"`
	M                int    `bun:"m,notnull"`
}

// DataColumns is one row of the extended-column-metadata registry, keyed by
// (table, column). All fields beyond the key are descriptive only; the
// physical column type always comes from table introspection.
type DataColumns struct {
	bun.BaseModel `bun:"table:gpkg_data_columns"`

	TableName      string  `bun:"table_name,pk"`
	ColumnName     string  `bun:"column_name,pk"`
	Name           *string `bun:"name"`
	Title          *string `bun:"title"`
	Description    *string `bun:"description"`
	MimeType       *string `bun:"mime_type"`
	ConstraintName *string `bun:"constraint_name"`
}

// DataColumnConstraints is one row of the named-constraint registry
// referenced from DataColumns.ConstraintName.
type DataColumnConstraints struct {
	bun.BaseModel `bun:"table:gpkg_data_column_constraints"`

	ConstraintName string   `bun:"constraint_name,notnull"`
	ConstraintType string   `bun:"constraint_type,notnull"`
	Value          *string  `bun:"value"`
	Min            *float64 `bun:"min"`
	MinIsInclusive *bool    `bun:"min_is_inclusive"`
	Max            *float64 `bun:"max"`
	MaxIsInclusive *bool    `bun:"max_is_inclusive"`
	Description    *string  `bun:"description"`
}

// SpatialRefSys is one row of the spatial-reference registry, keyed by the
// numeric CRS id.
type SpatialRefSys struct {
	bun.BaseModel `bun:"table:gpkg_spatial_ref_sys"`

	SRSName                string `bun:"srs_name,notnull"`
	SRSID                  int    `bun:"srs_id,pk"`
	Organization           string `bun:"organization,notnull"`
	OrganizationCoordsysID int    `bun:"organization_coordsys_id,notnull"`
	Definition             string `bun:"definition,notnull"`
	Description            string `bun:"description"`
}
