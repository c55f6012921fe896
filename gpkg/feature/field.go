package feature

import (
	"context"

	"github.com/geoboxdev/geobox/gpkg/catalog"
	"github.com/geoboxdev/geobox/gpkg/schema"
)

// FieldMetadata is one column of a feature table: the physical storage type
// from table introspection merged with whatever descriptive metadata the
// extended-column-metadata registry holds for the column. The storage type
// always comes from introspection; the catalog contributes presentation
// fields only.
type FieldMetadata struct {
	Name        string
	StorageType string
	Binding     schema.Binding

	// FeatureID marks the column that carries externally supplied feature
	// ids; Geometry marks the geometry column.
	FeatureID bool
	Geometry  bool

	// Extended is true when the column-metadata registry had a row for this
	// column. The fields below are empty otherwise.
	Extended       bool
	DisplayName    string
	Title          string
	Description    string
	MimeType       string
	ConstraintName string
}

// Constraint resolves the named constraint this field references, if any.
// Fields without a constraint reference return (nil, nil); a registered name
// that fails to resolve is an error.
func (f *FieldMetadata) Constraint(ctx context.Context, cat *catalog.Catalog) (*schema.Constraint, error) {
	if f.ConstraintName == "" {
		return nil, nil
	}
	return cat.Constraint(ctx, f.ConstraintName)
}
