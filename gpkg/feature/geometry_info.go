package feature

import (
	"context"

	"github.com/geoboxdev/geobox/gpkg/schema"
	"github.com/geoboxdev/geobox/pkg/errors"
)

// GeometryInfo is the resolved geometry descriptor of a feature table: the
// geometry-column registry row joined with its spatial-reference entry. It
// is a read-only snapshot; it can only be rebuilt by a full metadata
// refresh, never patched.
type GeometryInfo struct {
	ColumnName       string
	GeometryTypeName string
	SRSID            int
	Z                schema.Dimensionality
	M                schema.Dimensionality
	Organization     string
	Definition       string
}

// resolveGeometryInfo performs the two-step resolution: exactly one
// geometry-column row for the table, then the spatial-reference row it
// points at. Zero rows, ambiguity, and a dangling CRS reference are each
// distinct hard failures; nothing is ever defaulted.
func (t *Table) resolveGeometryInfo(ctx context.Context) (*GeometryInfo, error) {
	rs, err := t.cat.GeometryColumns(ctx, t.name)
	if err != nil {
		return nil, err
	}
	switch {
	case rs.Len() == 0:
		return nil, errors.Newf(ErrGeometryColumnsMissing, "no geometry column definition for table %s", t.name)
	case rs.Len() > 1:
		return nil, errors.Newf(ErrGeometryColumnsAmbiguous,
			"table %s has %d geometry column definitions, expected exactly one", t.name, rs.Len())
	}

	info := &GeometryInfo{
		ColumnName:       rs.GetString(0, "column_name"),
		GeometryTypeName: rs.GetString(0, "geometry_type_name"),
		SRSID:            rs.GetInt(0, "srs_id"),
	}

	z, err := schema.ParseDimensionality(rs.GetInt(0, "z"))
	if err != nil {
		return nil, err
	}
	m, err := schema.ParseDimensionality(rs.GetInt(0, "m"))
	if err != nil {
		return nil, err
	}
	// An unset flag in the registry leaves the format's default in place.
	info.Z, info.M = z, m
	if info.Z == schema.DimensionalityUnspecified {
		info.Z = schema.DimensionalityOptional
	}
	if info.M == schema.DimensionalityUnspecified {
		info.M = schema.DimensionalityOptional
	}

	srs, err := t.cat.SpatialRefSys(ctx, info.SRSID)
	if err != nil {
		return nil, err
	}
	if srs.Len() == 0 {
		return nil, errors.Newf(ErrSRSDangling,
			"table %s references srs %d which is not defined in the spatial-reference registry", t.name, info.SRSID)
	}
	info.Organization = srs.GetString(0, "organization")
	info.Definition = srs.GetString(0, "definition")

	return info, nil
}
