// Package catalog provides access to the GeoPackage system catalog: the
// contents registry, the geometry-column registry, the extended
// column-metadata registry, the named-constraint registry, and the
// spatial-reference registry.
package catalog

import (
	"context"

	"github.com/geoboxdev/geobox/gpkg/schema"
	"github.com/geoboxdev/geobox/gpkg/storage"
	"github.com/geoboxdev/geobox/pkg/errors"
)

// Catalog error codes
var (
	ErrContentsQueryFailed   = errors.MustNewCode("catalog.contents_query_failed")
	ErrGeometryQueryFailed   = errors.MustNewCode("catalog.geometry_query_failed")
	ErrDataColumnsFailed     = errors.MustNewCode("catalog.data_columns_query_failed")
	ErrSpatialRefQueryFailed = errors.MustNewCode("catalog.spatial_ref_query_failed")
	ErrConstraintQueryFailed = errors.MustNewCode("catalog.constraint_query_failed")
	ErrConstraintNotFound    = errors.MustNewCode("catalog.constraint_not_found")
	ErrConstraintWriteFailed = errors.MustNewCode("catalog.constraint_write_failed")
)

// Catalog reads and writes the system catalog tables through the storage
// collaborator. It owns no state of its own; every method is one query.
type Catalog struct {
	db *storage.Database
}

// New wraps a container database.
func New(db *storage.Database) *Catalog {
	return &Catalog{db: db}
}

// Bootstrap creates the system tables and seed rows if they are missing.
func (c *Catalog) Bootstrap(ctx context.Context) error {
	migrator := NewMigrator(c.db.SQL())
	if err := migrator.MigrateToLatest(ctx); err != nil {
		return err
	}
	return migrator.VerifySchema(ctx)
}

// Contents returns the contents-registry rows for a table (zero or one).
func (c *Catalog) Contents(ctx context.Context, table string) (*storage.RowSet, error) {
	rs, err := c.db.Query(ctx,
		`SELECT table_name, data_type, identifier, description, last_change,
		        min_x, min_y, max_x, max_y, srs_id
		 FROM gpkg_contents WHERE table_name = ?`, table)
	if err != nil {
		return nil, errors.Wrap(ErrContentsQueryFailed, err, "failed to query contents registry").
			AddContext("table", table)
	}
	return rs, nil
}

// HasContents reports whether the contents registry knows the table.
func (c *Catalog) HasContents(ctx context.Context, table string) (bool, error) {
	rs, err := c.Contents(ctx, table)
	if err != nil {
		return false, err
	}
	return rs.Len() > 0, nil
}

// ListContents returns every contents-registry row.
func (c *Catalog) ListContents(ctx context.Context) (*storage.RowSet, error) {
	rs, err := c.db.Query(ctx,
		`SELECT table_name, data_type, identifier, description, last_change, srs_id
		 FROM gpkg_contents ORDER BY table_name`)
	if err != nil {
		return nil, errors.Wrap(ErrContentsQueryFailed, err, "failed to list contents registry")
	}
	return rs, nil
}

// GeometryColumns returns the geometry-column registry rows for a table.
// The format allows exactly one; callers enforce that invariant.
func (c *Catalog) GeometryColumns(ctx context.Context, table string) (*storage.RowSet, error) {
	rs, err := c.db.Query(ctx,
		`SELECT table_name, column_name, geometry_type_name, srs_id, z, m
		 FROM gpkg_geometry_columns WHERE table_name = ?`, table)
	if err != nil {
		return nil, errors.Wrap(ErrGeometryQueryFailed, err, "failed to query geometry-column registry").
			AddContext("table", table)
	}
	return rs, nil
}

// DataColumns returns the extended-column-metadata rows for a table.
func (c *Catalog) DataColumns(ctx context.Context, table string) (*storage.RowSet, error) {
	rs, err := c.db.Query(ctx,
		`SELECT table_name, column_name, name, title, description, mime_type, constraint_name
		 FROM gpkg_data_columns WHERE table_name = ?`, table)
	if err != nil {
		return nil, errors.Wrap(ErrDataColumnsFailed, err, "failed to query column-metadata registry").
			AddContext("table", table)
	}
	return rs, nil
}

// SpatialRefSys returns the spatial-reference row for a CRS id (zero or one).
func (c *Catalog) SpatialRefSys(ctx context.Context, srsID int) (*storage.RowSet, error) {
	rs, err := c.db.Query(ctx,
		`SELECT srs_name, srs_id, organization, organization_coordsys_id, definition, description
		 FROM gpkg_spatial_ref_sys WHERE srs_id = ?`, srsID)
	if err != nil {
		return nil, errors.Wrapf(ErrSpatialRefQueryFailed, err, "failed to query spatial-reference registry for srs %d", srsID)
	}
	return rs, nil
}

// HasSpatialRefSys reports whether the CRS id exists in the registry.
func (c *Catalog) HasSpatialRefSys(ctx context.Context, srsID int) (bool, error) {
	rs, err := c.SpatialRefSys(ctx, srsID)
	if err != nil {
		return false, err
	}
	return rs.Len() > 0 && rs.GetInt(0, "srs_id") == srsID, nil
}

// ListSpatialRefSys returns every spatial-reference row.
func (c *Catalog) ListSpatialRefSys(ctx context.Context) (*storage.RowSet, error) {
	rs, err := c.db.Query(ctx,
		`SELECT srs_name, srs_id, organization, organization_coordsys_id, definition, description
		 FROM gpkg_spatial_ref_sys ORDER BY srs_id`)
	if err != nil {
		return nil, errors.Wrap(ErrSpatialRefQueryFailed, err, "failed to list spatial-reference registry")
	}
	return rs, nil
}

// AddSpatialRefSys registers a new reference system.
func (c *Catalog) AddSpatialRefSys(ctx context.Context, srs SpatialRefSys) error {
	return c.db.Exec(ctx,
		`INSERT INTO gpkg_spatial_ref_sys
		   (srs_name, srs_id, organization, organization_coordsys_id, definition, description)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		srs.SRSName, srs.SRSID, srs.Organization, srs.OrganizationCoordsysID, srs.Definition, srs.Description)
}

// Constraint resolves a named column constraint. Missing names return a
// coded not-found error so callers can distinguish absence from failure.
func (c *Catalog) Constraint(ctx context.Context, name string) (*schema.Constraint, error) {
	if name == "" {
		return nil, errors.New(ErrConstraintNotFound, "empty constraint name")
	}
	rs, err := c.db.Query(ctx,
		`SELECT constraint_name, constraint_type, value, min, min_is_inclusive,
		        max, max_is_inclusive, description
		 FROM gpkg_data_column_constraints WHERE constraint_name = ?`, name)
	if err != nil {
		return nil, errors.Wrap(ErrConstraintQueryFailed, err, "failed to query constraint registry").
			AddContext("constraint", name)
	}
	if rs.Len() == 0 {
		return nil, errors.Newf(ErrConstraintNotFound, "constraint %q is not registered", name)
	}

	constraint := &schema.Constraint{
		Name:        rs.GetString(0, "constraint_name"),
		Type:        schema.ConstraintType(rs.GetString(0, "constraint_type")),
		Value:       rs.GetString(0, "value"),
		Description: rs.GetString(0, "description"),
	}
	if min, ok := rs.GetFloat(0, "min"); ok {
		constraint.Min = min
	}
	if max, ok := rs.GetFloat(0, "max"); ok {
		constraint.Max = max
	}
	constraint.MinInclusive = rs.GetInt(0, "min_is_inclusive") == 1
	constraint.MaxInclusive = rs.GetInt(0, "max_is_inclusive") == 1
	return constraint, nil
}

// AddConstraint registers a named constraint. Constraints must exist before
// a schema references them from column metadata.
func (c *Catalog) AddConstraint(ctx context.Context, constraint *schema.Constraint) error {
	if err := constraint.Validate(); err != nil {
		return err
	}

	var (
		value          *string
		min, max       *float64
		minInc, maxInc *bool
		description    *string
	)
	if constraint.Value != "" {
		value = &constraint.Value
	}
	if constraint.Type == schema.ConstraintRange {
		min, max = &constraint.Min, &constraint.Max
		minInc, maxInc = &constraint.MinInclusive, &constraint.MaxInclusive
	}
	if constraint.Description != "" {
		description = &constraint.Description
	}

	err := c.db.Exec(ctx,
		`INSERT INTO gpkg_data_column_constraints
		   (constraint_name, constraint_type, value, min, min_is_inclusive, max, max_is_inclusive, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		constraint.Name, string(constraint.Type), value, min, minInc, max, maxInc, description)
	if err != nil {
		return errors.Wrap(ErrConstraintWriteFailed, err, "failed to register constraint").
			AddContext("constraint", constraint.Name)
	}
	return nil
}
