package schema

import "github.com/geoboxdev/geobox/pkg/errors"

var ErrInvalidConstraint = errors.MustNewCode("schema.invalid_constraint")

// ConstraintType is the kind of a named column constraint.
type ConstraintType string

const (
	ConstraintRange ConstraintType = "range"
	ConstraintEnum  ConstraintType = "enum"
	ConstraintGlob  ConstraintType = "glob"
)

// Constraint is a named validation rule attributes reference by name through
// the extended-column-metadata registry. Range constraints use Min/Max, enum
// and glob constraints use Value.
type Constraint struct {
	Name         string
	Type         ConstraintType
	Value        string
	Min          float64
	MinInclusive bool
	Max          float64
	MaxInclusive bool
	Description  string
}

// Validate checks the constraint is well formed for its type.
func (c *Constraint) Validate() error {
	if c.Name == "" {
		return errors.New(ErrInvalidConstraint, "constraint has no name")
	}
	switch c.Type {
	case ConstraintRange:
		if c.Min > c.Max {
			return errors.Newf(ErrInvalidConstraint, "constraint %q: min %v exceeds max %v", c.Name, c.Min, c.Max)
		}
	case ConstraintEnum, ConstraintGlob:
		if c.Value == "" {
			return errors.Newf(ErrInvalidConstraint, "constraint %q: %s constraint requires a value", c.Name, c.Type)
		}
	default:
		return errors.Newf(ErrInvalidConstraint, "constraint %q: unknown type %q", c.Name, c.Type)
	}
	return nil
}
