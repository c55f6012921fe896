package storage

import (
	"strings"

	"github.com/geoboxdev/geobox/gpkg/schema"
	"github.com/geoboxdev/geobox/pkg/errors"
)

// GeometryStorageType is the declared column type for geometry columns. The
// payload encoding is the geometry codec's concern, not this package's.
const GeometryStorageType = "GEOMETRY"

var storageTypes = map[schema.Binding]string{
	schema.BindingString:   "TEXT",
	schema.BindingInt:      "INTEGER",
	schema.BindingFloat:    "REAL",
	schema.BindingBool:     "BOOLEAN",
	schema.BindingBlob:     "BLOB",
	schema.BindingDateTime: "DATETIME",
}

// StorageType maps an attribute binding to its SQLite storage type name.
func StorageType(b schema.Binding) (string, error) {
	if t, ok := storageTypes[b]; ok {
		return t, nil
	}
	return "", errors.Newf(ErrUnknownBinding, "no storage type for binding %q", b)
}

// BindingForStorageType is the reverse mapping, used when enriching
// introspected columns. Unknown declared types fall back to BindingString,
// matching SQLite's own affinity rules closely enough for presentation.
func BindingForStorageType(declared string) schema.Binding {
	switch strings.ToUpper(declared) {
	case "INTEGER", "INT", "SMALLINT", "BIGINT":
		return schema.BindingInt
	case "REAL", "DOUBLE", "FLOAT", "NUMERIC":
		return schema.BindingFloat
	case "BOOLEAN":
		return schema.BindingBool
	case "BLOB", GeometryStorageType:
		return schema.BindingBlob
	case "DATETIME", "DATE", "TIMESTAMP":
		return schema.BindingDateTime
	default:
		return schema.BindingString
	}
}
