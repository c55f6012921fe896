package schema

import (
	"strings"

	"github.com/geoboxdev/geobox/pkg/errors"
)

// GeometryType is one of the geometry type names the container format
// supports. Stored lower-case in the geometry-column registry.
type GeometryType string

const (
	Geometry           GeometryType = "geometry"
	Point              GeometryType = "point"
	LineString         GeometryType = "linestring"
	Polygon            GeometryType = "polygon"
	MultiPoint         GeometryType = "multipoint"
	MultiLineString    GeometryType = "multilinestring"
	MultiPolygon       GeometryType = "multipolygon"
	GeometryCollection GeometryType = "geometrycollection"
)

var geometryTypes = map[GeometryType]struct{}{
	Geometry:           {},
	Point:              {},
	LineString:         {},
	Polygon:            {},
	MultiPoint:         {},
	MultiLineString:    {},
	MultiPolygon:       {},
	GeometryCollection: {},
}

func (g GeometryType) String() string { return string(g) }

func (g GeometryType) IsValid() bool {
	_, ok := geometryTypes[g]
	return ok
}

// ParseGeometryType resolves a geometry type name, case-insensitively.
// Unsupported names are a validation failure, not a default.
func ParseGeometryType(s string) (GeometryType, error) {
	g := GeometryType(strings.ToLower(strings.TrimSpace(s)))
	if !g.IsValid() {
		return "", errors.Newf(ErrInvalidGeometryType, "geometry type %q is not supported", s)
	}
	return g, nil
}

// Dimensionality is the tri-state z/m flag of the geometry-column registry.
// The zero value means "not specified" so a bare GeometryDescriptor does not
// accidentally prohibit z or m values; unspecified flags are written as
// optional, the format's permissive default.
type Dimensionality int

const (
	DimensionalityUnspecified Dimensionality = iota
	DimensionalityProhibited
	DimensionalityMandatory
	DimensionalityOptional
)

func (d Dimensionality) String() string {
	switch d {
	case DimensionalityProhibited:
		return "prohibited"
	case DimensionalityMandatory:
		return "mandatory"
	case DimensionalityOptional:
		return "optional"
	default:
		return "unspecified"
	}
}

// EncodedValue returns the registry encoding of the flag: 0 prohibited,
// 1 mandatory, 2 optional. Unspecified encodes as optional.
func (d Dimensionality) EncodedValue() int {
	switch d {
	case DimensionalityProhibited:
		return 0
	case DimensionalityMandatory:
		return 1
	default:
		return 2
	}
}

// ParseDimensionality decodes a raw z/m value read from the catalog. The
// sentinel -1 means the flag was never specified and maps to
// DimensionalityUnspecified rather than zero.
func ParseDimensionality(v int) (Dimensionality, error) {
	switch v {
	case -1:
		return DimensionalityUnspecified, nil
	case 0:
		return DimensionalityProhibited, nil
	case 1:
		return DimensionalityMandatory, nil
	case 2:
		return DimensionalityOptional, nil
	default:
		return DimensionalityUnspecified, errors.Newf(ErrInvalidDimensionalityValue, "invalid z/m value %d", v)
	}
}
