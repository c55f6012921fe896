package feature

import (
	"fmt"
	"strings"
	"time"

	"github.com/geoboxdev/geobox/gpkg/catalog"
	"github.com/geoboxdev/geobox/gpkg/schema"
	"github.com/geoboxdev/geobox/gpkg/storage"
	"github.com/go-spatial/geom"
)

// LastChangeFormat is the timestamp layout used in the contents registry:
// ISO-8601 in UTC with millisecond precision.
const LastChangeFormat = "2006-01-02T15:04:05.000Z"

// buildCreateBatch translates a validated feature schema into the statement
// batch that creates the table. Statement order is fixed and load-bearing:
// table DDL first, then the geometry-column registry row, then the contents
// row, then one column-metadata row per column. The storage layer enforces
// no cross-statement references, so ordering stands in for foreign keys.
func (t *Table) buildCreateBatch(s *schema.FeatureSchema, extent *geom.Extent, now time.Time) ([]storage.Statement, error) {
	var columnDefs []string
	columnDefs = append(columnDefs,
		storage.QuoteIdentifier(schema.SurrogateKeyColumn)+" INTEGER PRIMARY KEY AUTOINCREMENT",
		storage.QuoteIdentifier(t.featureID)+" TEXT",
		storage.QuoteIdentifier(s.Geometry.Column)+" "+storage.GeometryStorageType,
	)
	for _, attr := range s.Attributes {
		storageType, err := storage.StorageType(attr.Binding)
		if err != nil {
			return nil, err
		}
		columnDefs = append(columnDefs, storage.QuoteIdentifier(attr.Name)+" "+storageType)
	}

	stmts := []storage.Statement{
		{SQL: fmt.Sprintf("CREATE TABLE %s (%s)",
			storage.QuoteIdentifier(t.name), strings.Join(columnDefs, ", "))},
		{
			SQL: `INSERT INTO gpkg_geometry_columns
			        (table_name, column_name, geometry_type_name, srs_id, z, m)
			      VALUES (?, ?, ?, ?, ?, ?)`,
			Args: []interface{}{
				t.name,
				s.Geometry.Column,
				s.Geometry.Type.String(),
				s.Geometry.SRSID,
				s.Geometry.Z.EncodedValue(),
				s.Geometry.M.EncodedValue(),
			},
		},
		{
			SQL: `INSERT INTO gpkg_contents
			        (table_name, data_type, identifier, description, last_change,
			         min_x, min_y, max_x, max_y, srs_id)
			      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			Args: contentsArgs(t.name, s.Description, s.Geometry.SRSID, extent, now),
		},
	}

	stmts = append(stmts, t.columnMetadataStatements(s)...)
	return stmts, nil
}

func contentsArgs(table, description string, srsID int, extent *geom.Extent, now time.Time) []interface{} {
	var minX, minY, maxX, maxY interface{}
	if extent != nil {
		minX, minY, maxX, maxY = extent.MinX(), extent.MinY(), extent.MaxX(), extent.MaxY()
	}
	return []interface{}{
		table,
		catalog.DataTypeFeatures,
		table,
		description,
		now.UTC().Format(LastChangeFormat),
		minX, minY, maxX, maxY,
		srsID,
	}
}

// columnMetadataStatements produces one extended-metadata row per column.
// The feature-id and geometry columns get synthetic display rows even though
// they are not user attributes, so readers can rebuild the full column story
// from the catalog alone.
func (t *Table) columnMetadataStatements(s *schema.FeatureSchema) []storage.Statement {
	const insertSQL = `INSERT INTO gpkg_data_columns
	                     (table_name, column_name, name, title, description, mime_type, constraint_name)
	                   VALUES (?, ?, ?, ?, ?, ?, ?)`

	stmts := []storage.Statement{
		{SQL: insertSQL, Args: []interface{}{t.name, t.featureID, "FeatureID", "FeatureID", nil, nil, nil}},
		{SQL: insertSQL, Args: []interface{}{t.name, s.Geometry.Column, s.Geometry.Column, "Feature Geometry", nil, nil, nil}},
	}

	for _, attr := range s.Attributes {
		args := []interface{}{t.name, attr.Name, attr.Name, nil, nil, nil, nil}
		if md := attr.Metadata; md != nil {
			if md.DisplayName != "" {
				args[2] = md.DisplayName
			}
			args[3] = nullable(md.Title)
			args[4] = nullable(md.Description)
			args[5] = nullable(md.MimeType)
			args[6] = nullable(md.ConstraintName)
		}
		stmts = append(stmts, storage.Statement{SQL: insertSQL, Args: args})
	}
	return stmts
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
