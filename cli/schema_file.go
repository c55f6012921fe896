package cli

import (
	"os"

	"github.com/geoboxdev/geobox/gpkg/schema"
	"github.com/geoboxdev/geobox/pkg/errors"
	"github.com/tidwall/gjson"
)

// Schema-file error codes
var (
	ErrSchemaFileReadFailed = errors.MustNewCode("cli.schema_file_read_failed")
	ErrSchemaFileInvalid    = errors.MustNewCode("cli.schema_file_invalid")
)

// loadFeatureSchema reads a feature schema definition from a JSON file:
//
//	{
//	  "name": "roads",
//	  "description": "Road centerlines",
//	  "geometry": {"column": "geom", "type": "linestring", "srs_id": 4326,
//	               "z": "optional", "m": "prohibited"},
//	  "attributes": [
//	    {"name": "name", "type": "string", "title": "Road name"},
//	    {"name": "lanes", "type": "int", "constraint": "lane_count"}
//	  ]
//	}
func loadFeatureSchema(path string) (*schema.FeatureSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(ErrSchemaFileReadFailed, err, "failed to read schema file").
			AddContext("path", path)
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New(ErrSchemaFileInvalid, "schema file is not valid JSON").
			AddContext("path", path)
	}
	root := gjson.ParseBytes(data)

	geometryType, err := schema.ParseGeometryType(root.Get("geometry.type").String())
	if err != nil {
		return nil, err
	}

	fs := &schema.FeatureSchema{
		Name:            root.Get("name").String(),
		Description:     root.Get("description").String(),
		FeatureIDColumn: root.Get("feature_id").String(),
		Geometry: schema.GeometryDescriptor{
			Column: root.Get("geometry.column").String(),
			Type:   geometryType,
			SRSID:  int(root.Get("geometry.srs_id").Int()),
			Z:      dimensionalityFromJSON(root.Get("geometry.z")),
			M:      dimensionalityFromJSON(root.Get("geometry.m")),
		},
	}

	var attrErr error
	root.Get("attributes").ForEach(func(_, item gjson.Result) bool {
		binding, err := schema.ParseBinding(item.Get("type").String())
		if err != nil {
			attrErr = err
			return false
		}
		attr := schema.Attribute{
			Name:    item.Get("name").String(),
			Binding: binding,
		}
		md := schema.ColumnMetadata{
			DisplayName:    item.Get("display_name").String(),
			Title:          item.Get("title").String(),
			Description:    item.Get("description").String(),
			MimeType:       item.Get("mime_type").String(),
			ConstraintName: item.Get("constraint").String(),
		}
		if md != (schema.ColumnMetadata{}) {
			attr.Metadata = &md
		}
		fs.Attributes = append(fs.Attributes, attr)
		return true
	})
	if attrErr != nil {
		return nil, attrErr
	}

	return fs, nil
}

func dimensionalityFromJSON(result gjson.Result) schema.Dimensionality {
	switch result.String() {
	case "prohibited":
		return schema.DimensionalityProhibited
	case "mandatory":
		return schema.DimensionalityMandatory
	case "optional":
		return schema.DimensionalityOptional
	default:
		return schema.DimensionalityUnspecified
	}
}
