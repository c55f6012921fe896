package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/geoboxdev/geobox/gpkg/schema"
	"github.com/geoboxdev/geobox/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSchemaFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFeatureSchema(t *testing.T) {
	path := writeSchemaFile(t, `{
		"name": "roads",
		"description": "Road centerlines",
		"feature_id": "fid",
		"geometry": {"column": "geom", "type": "linestring", "srs_id": 4326, "z": "prohibited", "m": "optional"},
		"attributes": [
			{"name": "name", "type": "string", "title": "Road name"},
			{"name": "lanes", "type": "int", "constraint": "lane_count"},
			{"name": "length_km", "type": "double"}
		]
	}`)

	fs, err := loadFeatureSchema(path)
	require.NoError(t, err)

	assert.Equal(t, "roads", fs.Name)
	assert.Equal(t, "Road centerlines", fs.Description)
	assert.Equal(t, "fid", fs.FeatureIDColumn)
	assert.Equal(t, "geom", fs.Geometry.Column)
	assert.Equal(t, schema.LineString, fs.Geometry.Type)
	assert.Equal(t, 4326, fs.Geometry.SRSID)
	assert.Equal(t, schema.DimensionalityProhibited, fs.Geometry.Z)
	assert.Equal(t, schema.DimensionalityOptional, fs.Geometry.M)

	require.Len(t, fs.Attributes, 3)
	assert.Equal(t, schema.BindingString, fs.Attributes[0].Binding)
	require.NotNil(t, fs.Attributes[0].Metadata)
	assert.Equal(t, "Road name", fs.Attributes[0].Metadata.Title)
	require.NotNil(t, fs.Attributes[1].Metadata)
	assert.Equal(t, "lane_count", fs.Attributes[1].Metadata.ConstraintName)
	assert.Nil(t, fs.Attributes[2].Metadata)

	assert.NoError(t, fs.Validate())
}

func TestLoadFeatureSchemaOmittedDimensionality(t *testing.T) {
	path := writeSchemaFile(t, `{
		"name": "pois",
		"geometry": {"column": "pt", "type": "point", "srs_id": 4326},
		"attributes": [{"name": "label", "type": "text"}]
	}`)

	fs, err := loadFeatureSchema(path)
	require.NoError(t, err)
	assert.Equal(t, schema.DimensionalityUnspecified, fs.Geometry.Z)
	assert.Equal(t, schema.DimensionalityUnspecified, fs.Geometry.M)
}

func TestLoadFeatureSchemaErrors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		_, err := loadFeatureSchema(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, ErrSchemaFileReadFailed))
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		_, err := loadFeatureSchema(writeSchemaFile(t, `{"name": `))
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, ErrSchemaFileInvalid))
	})

	t.Run("BadGeometryType", func(t *testing.T) {
		_, err := loadFeatureSchema(writeSchemaFile(t,
			`{"name": "x", "geometry": {"column": "g", "type": "triangle", "srs_id": 4326}}`))
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, schema.ErrInvalidGeometryType))
	})

	t.Run("BadAttributeType", func(t *testing.T) {
		_, err := loadFeatureSchema(writeSchemaFile(t,
			`{"name": "x", "geometry": {"column": "g", "type": "point", "srs_id": 4326},
			  "attributes": [{"name": "a", "type": "decimal128"}]}`))
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, schema.ErrInvalidBinding))
	})
}

func TestParseBBox(t *testing.T) {
	extent, err := parseBBox("")
	require.NoError(t, err)
	assert.Nil(t, extent)

	extent, err = parseBBox("-10, 40, 5, 52")
	require.NoError(t, err)
	require.NotNil(t, extent)
	assert.Equal(t, -10.0, extent.MinX())
	assert.Equal(t, 40.0, extent.MinY())
	assert.Equal(t, 5.0, extent.MaxX())
	assert.Equal(t, 52.0, extent.MaxY())

	for _, bad := range []string{"1,2,3", "1,2,3,4,5", "a,2,3,4", "10,0,-10,5"} {
		_, err := parseBBox(bad)
		require.Error(t, err, "expected %q to be rejected", bad)
		assert.True(t, errors.HasCode(err, ErrInvalidBBox))
	}
}
