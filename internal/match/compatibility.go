package match

import "reflect"

//go:generate go tool stringer -type=Compat -linecomment -output=compat_string.go

// Compat ranks how a source property type fits a destination property type.
type Compat int

const (
	// Incompatible types cannot be mapped.
	Incompatible Compat = iota // incompatible
	// Convertible types would need an explicit conversion, which the mapper
	// does not perform.
	Convertible // convertible
	// Assignable types can be copied as is.
	Assignable // assignable
	// Identical types are the same type.
	Identical // identical
)

// Mappable reports whether a value can be copied without conversion.
func (c Compat) Mappable() bool {
	return c >= Assignable
}

// Compatibility compares src and dst. A nil type on either side is Incompatible.
func Compatibility(src, dst reflect.Type) Compat {
	switch {
	case src == nil || dst == nil:
		return Incompatible
	case src == dst:
		return Identical
	case src.AssignableTo(dst):
		return Assignable
	case src.ConvertibleTo(dst):
		return Convertible
	default:
		return Incompatible
	}
}

func (c Compat) score() float64 {
	switch c {
	case Identical:
		return 1
	case Assignable:
		return 0.9
	case Convertible:
		return 0.4
	default:
		return 0
	}
}
