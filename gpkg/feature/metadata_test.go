package feature

import (
	"context"
	"testing"

	"github.com/geoboxdev/geobox/gpkg/schema"
	"github.com/geoboxdev/geobox/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataLoadsFromExistingContainer(t *testing.T) {
	db, cat := newTestContainer(t)
	ctx := context.Background()

	creator := New(db, cat, zerolog.Nop(), "landmarks")
	require.NoError(t, creator.Create(ctx, exampleSchema(), exampleExtent()))

	// A fresh handle rebuilds the full picture from the container alone.
	reader := New(db, cat, zerolog.Nop(), "landmarks")
	fields, err := reader.Fields(ctx)
	require.NoError(t, err)
	require.Len(t, fields, 4)
	assert.Equal(t, "feature_id", fields[0].Name)
	assert.Equal(t, "points", fields[1].Name)

	info, err := reader.GeometryInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4326, info.SRSID)
	assert.Equal(t, "Points of interest", reader.Description(ctx))
}

func TestFieldLookup(t *testing.T) {
	db, cat := newTestContainer(t)
	ctx := context.Background()

	table := New(db, cat, zerolog.Nop(), "landmarks")
	require.NoError(t, table.Create(ctx, exampleSchema(), exampleExtent()))

	f, err := table.Field(ctx, "area")
	require.NoError(t, err)
	assert.Equal(t, schema.BindingFloat, f.Binding)

	_, err = table.Field(ctx, "altitude")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, ErrFieldNotFound))
}

func TestRefreshFailsForMissingTable(t *testing.T) {
	db, cat := newTestContainer(t)

	table := New(db, cat, zerolog.Nop(), "ghost")
	_, err := table.Fields(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, ErrRefreshFailed))
}

func TestMissingGeometryRegistryRow(t *testing.T) {
	db, cat := newTestContainer(t)
	ctx := context.Background()

	// A physical table without a geometry-column registry row cannot be
	// described as a feature table.
	require.NoError(t, db.Exec(ctx,
		`CREATE TABLE bare (id INTEGER PRIMARY KEY AUTOINCREMENT, feature_id TEXT, geom GEOMETRY)`))

	table := New(db, cat, zerolog.Nop(), "bare")
	_, err := table.Fields(ctx)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, ErrGeometryColumnsMissing))

	_, err = table.GeometryInfo(ctx)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, ErrGeometryColumnsMissing))
}

func TestDanglingSpatialRefSysReference(t *testing.T) {
	db, cat := newTestContainer(t)
	ctx := context.Background()

	require.NoError(t, db.Exec(ctx,
		`CREATE TABLE stale (id INTEGER PRIMARY KEY AUTOINCREMENT, feature_id TEXT, geom GEOMETRY)`))
	require.NoError(t, db.Exec(ctx,
		`INSERT INTO gpkg_geometry_columns (table_name, column_name, geometry_type_name, srs_id, z, m)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		"stale", "geom", "point", 999999, 2, 2))

	table := New(db, cat, zerolog.Nop(), "stale")
	_, err := table.GeometryInfo(ctx)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, ErrSRSDangling))
}

func TestUnparseableLastChangeDegrades(t *testing.T) {
	db, cat := newTestContainer(t)
	ctx := context.Background()

	creator := New(db, cat, zerolog.Nop(), "landmarks")
	require.NoError(t, creator.Create(ctx, exampleSchema(), exampleExtent()))

	require.NoError(t, db.Exec(ctx,
		`UPDATE gpkg_contents SET last_change = ? WHERE table_name = ?`, "not a timestamp", "landmarks"))

	reader := New(db, cat, zerolog.Nop(), "landmarks")
	_, ok := reader.LastChange(ctx)
	assert.False(t, ok)

	// The broken decoration does not take the field list down with it.
	fields, err := reader.Fields(ctx)
	require.NoError(t, err)
	assert.Len(t, fields, 4)
}

func TestLastChangeAcceptsRFC3339(t *testing.T) {
	db, cat := newTestContainer(t)
	ctx := context.Background()

	creator := New(db, cat, zerolog.Nop(), "landmarks")
	require.NoError(t, creator.Create(ctx, exampleSchema(), exampleExtent()))

	require.NoError(t, db.Exec(ctx,
		`UPDATE gpkg_contents SET last_change = ? WHERE table_name = ?`, "2026-08-24T12:30:00Z", "landmarks"))

	reader := New(db, cat, zerolog.Nop(), "landmarks")
	ts, ok := reader.LastChange(ctx)
	require.True(t, ok)
	assert.Equal(t, 2026, ts.Year())
	assert.Equal(t, 30, ts.Minute())
}

func TestFieldConstraintResolution(t *testing.T) {
	db, cat := newTestContainer(t)
	ctx := context.Background()

	require.NoError(t, cat.AddConstraint(ctx, &schema.Constraint{
		Name: "area_range",
		Type: schema.ConstraintRange,
		Min:  0, Max: 1000, MinInclusive: true, MaxInclusive: true,
	}))

	s := exampleSchema()
	s.Attributes[1].Metadata = &schema.ColumnMetadata{ConstraintName: "area_range"}

	table := New(db, cat, zerolog.Nop(), "landmarks")
	require.NoError(t, table.Create(ctx, s, exampleExtent()))

	f, err := table.Field(ctx, "area")
	require.NoError(t, err)
	require.Equal(t, "area_range", f.ConstraintName)

	c, err := f.Constraint(ctx, cat)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, schema.ConstraintRange, c.Type)
	assert.Equal(t, 1000.0, c.Max)

	// Fields without a constraint reference resolve to nothing.
	name, err := table.Field(ctx, "name")
	require.NoError(t, err)
	c, err = name.Constraint(ctx, cat)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestColumnMetadataMerge(t *testing.T) {
	db, cat := newTestContainer(t)
	ctx := context.Background()

	s := exampleSchema()
	s.Attributes[0].Metadata = &schema.ColumnMetadata{
		DisplayName: "Landmark Name",
		Title:       "Name",
		Description: "Human readable landmark name",
		MimeType:    "text/plain",
	}

	table := New(db, cat, zerolog.Nop(), "landmarks")
	require.NoError(t, table.Create(ctx, s, exampleExtent()))

	f, err := table.Field(ctx, "name")
	require.NoError(t, err)
	assert.True(t, f.Extended)
	assert.Equal(t, "Landmark Name", f.DisplayName)
	assert.Equal(t, "Name", f.Title)
	assert.Equal(t, "Human readable landmark name", f.Description)
	assert.Equal(t, "text/plain", f.MimeType)
	// The physical type wins regardless of what the registry says.
	assert.Equal(t, "TEXT", f.StorageType)
}
