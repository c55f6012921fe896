package schema

import "github.com/geoboxdev/geobox/pkg/errors"

// Binding is the semantic type of a non-geometry attribute. The storage
// collaborator maps bindings to SQLite storage type names.
type Binding int

const (
	BindingUnknown Binding = iota
	BindingString
	BindingInt
	BindingFloat
	BindingBool
	BindingBlob
	BindingDateTime
)

var bindingNames = map[Binding]string{
	BindingString:   "string",
	BindingInt:      "int",
	BindingFloat:    "double",
	BindingBool:     "bool",
	BindingBlob:     "blob",
	BindingDateTime: "datetime",
}

var bindingValues = map[string]Binding{
	"string":   BindingString,
	"text":     BindingString,
	"int":      BindingInt,
	"integer":  BindingInt,
	"long":     BindingInt,
	"double":   BindingFloat,
	"float":    BindingFloat,
	"real":     BindingFloat,
	"bool":     BindingBool,
	"boolean":  BindingBool,
	"blob":     BindingBlob,
	"bytes":    BindingBlob,
	"datetime": BindingDateTime,
	"date":     BindingDateTime,
}

func (b Binding) String() string {
	if name, ok := bindingNames[b]; ok {
		return name
	}
	return "unknown"
}

func (b Binding) IsValid() bool {
	_, ok := bindingNames[b]
	return ok
}

// ParseBinding resolves a binding from its textual form. Several aliases are
// accepted so schema files written against other tooling still load.
func ParseBinding(s string) (Binding, error) {
	if b, ok := bindingValues[s]; ok {
		return b, nil
	}
	return BindingUnknown, errors.Newf(ErrInvalidBinding, "unknown attribute binding %q", s)
}
