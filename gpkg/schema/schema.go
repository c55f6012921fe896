// Package schema defines the value objects that describe a vector feature
// table before it exists: attribute bindings, the geometry descriptor, and
// optional per-column presentation metadata.
package schema

import (
	"strings"

	"github.com/geoboxdev/geobox/pkg/errors"
)

// Package-specific error codes for schema validation
var (
	ErrInvalidGeometryType        = errors.MustNewCode("schema.invalid_geometry_type")
	ErrGeometryColumnUnresolved   = errors.MustNewCode("schema.geometry_column_unresolved")
	ErrInvalidAttribute           = errors.MustNewCode("schema.invalid_attribute")
	ErrDuplicateAttribute         = errors.MustNewCode("schema.duplicate_attribute")
	ErrInvalidBinding             = errors.MustNewCode("schema.invalid_binding")
	ErrReservedAttributeName      = errors.MustNewCode("schema.reserved_attribute_name")
	ErrTableNameUnresolved        = errors.MustNewCode("schema.table_name_unresolved")
	ErrInvalidDimensionalityValue = errors.MustNewCode("schema.invalid_dimensionality_value")
)

// DefaultFeatureIDColumn is the feature-id column created on every feature
// table so external feature ids survive a round trip through the container.
const DefaultFeatureIDColumn = "feature_id"

// SurrogateKeyColumn is the auto-increment primary key every feature table
// carries. It is an implementation detail and never reported as a field.
const SurrogateKeyColumn = "id"

// ColumnMetadata is the optional presentation metadata recorded for a column
// in the extended-column-metadata registry.
type ColumnMetadata struct {
	DisplayName    string
	Title          string
	Description    string
	MimeType       string
	ConstraintName string
}

// Attribute is one non-geometry column of a feature type.
type Attribute struct {
	Name     string
	Binding  Binding
	Metadata *ColumnMetadata
}

// GeometryDescriptor describes the single geometry column of a feature type.
type GeometryDescriptor struct {
	Column string
	Type   GeometryType
	SRSID  int
	Z      Dimensionality
	M      Dimensionality
}

// FeatureSchema is the abstract description of a feature table: its
// attributes, its geometry column, and the CRS the geometries are stored in.
type FeatureSchema struct {
	Name        string
	Description string

	// FeatureIDColumn names the feature-id column; empty means
	// DefaultFeatureIDColumn.
	FeatureIDColumn string

	Attributes []Attribute
	Geometry   GeometryDescriptor
}

// TableName returns the physical table name: the schema name with spaces
// normalized to underscores.
func (s *FeatureSchema) TableName() string {
	return NormalizeTableName(s.Name)
}

// NormalizeTableName replaces spaces with underscores.
func NormalizeTableName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

// FeatureID returns the feature-id column name, applying the default.
func (s *FeatureSchema) FeatureID() string {
	if s.FeatureIDColumn == "" {
		return DefaultFeatureIDColumn
	}
	return s.FeatureIDColumn
}

// Validate checks the schema before any DDL is produced. All violations are
// hard failures; nothing is mutated on the container until this passes.
func (s *FeatureSchema) Validate() error {
	if s.TableName() == "" {
		return errors.New(ErrTableNameUnresolved, "feature schema has no table name")
	}
	if s.Geometry.Column == "" {
		return errors.New(ErrGeometryColumnUnresolved, "unable to resolve geometry attribute name")
	}
	if !s.Geometry.Type.IsValid() {
		return errors.Newf(ErrInvalidGeometryType, "geometry type %q is not supported", s.Geometry.Type)
	}

	seen := map[string]struct{}{
		SurrogateKeyColumn: {},
		s.FeatureID():      {},
		s.Geometry.Column:  {},
	}
	for _, attr := range s.Attributes {
		if attr.Name == "" {
			return errors.New(ErrInvalidAttribute, "attribute with empty name")
		}
		if attr.Name == SurrogateKeyColumn || attr.Name == s.FeatureID() || attr.Name == s.Geometry.Column {
			return errors.Newf(ErrReservedAttributeName, "attribute %q collides with a reserved column", attr.Name)
		}
		if _, dup := seen[attr.Name]; dup {
			return errors.Newf(ErrDuplicateAttribute, "attribute %q declared more than once", attr.Name)
		}
		seen[attr.Name] = struct{}{}
		if !attr.Binding.IsValid() {
			return errors.Newf(ErrInvalidBinding, "attribute %q has unknown binding", attr.Name)
		}
	}
	return nil
}
