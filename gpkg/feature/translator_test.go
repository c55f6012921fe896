package feature

import (
	"strings"
	"testing"
	"time"

	"github.com/geoboxdev/geobox/gpkg/schema"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCreateBatchOrderAndShape(t *testing.T) {
	db, cat := newTestContainer(t)

	table := New(db, cat, zerolog.Nop(), "landmarks")
	now := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	stmts, err := table.buildCreateBatch(exampleSchema(), exampleExtent(), now)
	require.NoError(t, err)

	// DDL, geometry registry, contents, then one metadata row per column.
	require.Len(t, stmts, 3+2+2)

	ddl := stmts[0].SQL
	assert.True(t, strings.HasPrefix(ddl, `CREATE TABLE "landmarks"`))
	idID := strings.Index(ddl, `"id" INTEGER PRIMARY KEY AUTOINCREMENT`)
	idFeature := strings.Index(ddl, `"feature_id" TEXT`)
	idGeom := strings.Index(ddl, `"points" GEOMETRY`)
	idName := strings.Index(ddl, `"name" TEXT`)
	idArea := strings.Index(ddl, `"area" REAL`)
	for col, idx := range map[string]int{"id": idID, "feature_id": idFeature, "points": idGeom, "name": idName, "area": idArea} {
		require.GreaterOrEqual(t, idx, 0, "missing column def for %s", col)
	}
	assert.True(t, idID < idFeature && idFeature < idGeom && idGeom < idName && idName < idArea,
		"column defs out of order: %s", ddl)

	assert.Contains(t, stmts[1].SQL, "gpkg_geometry_columns")
	assert.Equal(t, []interface{}{"landmarks", "points", "point", 4326, 2, 2}, stmts[1].Args)

	assert.Contains(t, stmts[2].SQL, "gpkg_contents")
	require.Len(t, stmts[2].Args, 10)
	assert.Equal(t, "landmarks", stmts[2].Args[0])
	assert.Equal(t, "features", stmts[2].Args[1])
	assert.Equal(t, "2026-08-24T10:00:00.000Z", stmts[2].Args[4])
	assert.Equal(t, 0.0, stmts[2].Args[5])
	assert.Equal(t, 10.0, stmts[2].Args[8])

	// Synthetic rows first, then attributes in schema order.
	assert.Equal(t, "feature_id", stmts[3].Args[1])
	assert.Equal(t, "FeatureID", stmts[3].Args[2])
	assert.Equal(t, "points", stmts[4].Args[1])
	assert.Equal(t, "Feature Geometry", stmts[4].Args[3])
	assert.Equal(t, "name", stmts[5].Args[1])
	assert.Equal(t, "area", stmts[6].Args[1])
}

func TestBuildCreateBatchNilExtent(t *testing.T) {
	db, cat := newTestContainer(t)

	table := New(db, cat, zerolog.Nop(), "landmarks")
	stmts, err := table.buildCreateBatch(exampleSchema(), nil, time.Now())
	require.NoError(t, err)

	for i := 5; i <= 8; i++ {
		assert.Nil(t, stmts[2].Args[i], "expected unset extent arg at %d", i)
	}
}

func TestBuildCreateBatchDimensionality(t *testing.T) {
	db, cat := newTestContainer(t)

	s := exampleSchema()
	s.Geometry.Z = schema.DimensionalityMandatory
	s.Geometry.M = schema.DimensionalityProhibited

	table := New(db, cat, zerolog.Nop(), "landmarks")
	stmts, err := table.buildCreateBatch(s, nil, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 1, stmts[1].Args[4])
	assert.Equal(t, 0, stmts[1].Args[5])
}

func TestParseLastChange(t *testing.T) {
	ts, err := parseLastChange("2026-08-24T10:00:00.000Z")
	require.NoError(t, err)
	assert.Equal(t, time.August, ts.Month())

	ts, err = parseLastChange("2026-08-24T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, ts.Hour())

	_, err = parseLastChange("yesterday")
	require.Error(t, err)
}
