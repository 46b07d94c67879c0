package registry

//go:generate go tool stringer -type=OverrideKind -trimprefix=Override -output=overridekind_string.go

// OverrideKind discriminates Override variants.
type OverrideKind int

const (
	// OverrideRedirect pulls the value from a differently named source property.
	OverrideRedirect OverrideKind = iota
	// OverrideConstant writes a fixed value and ignores the source.
	OverrideConstant
)

// Override replaces the default by-name resolution of one destination property.
type Override struct {
	// Kind selects which of Source or Value is meaningful.
	Kind OverrideKind
	// Target is the destination property name.
	Target string
	// Source is the source property name (redirects only).
	Source string
	// Value is the constant to assign (constants only). Nil assigns the zero value.
	Value any
}

// NewRedirect creates a redirect from source property src to destination property dst.
func NewRedirect(src, dst string) Override {
	return Override{Kind: OverrideRedirect, Target: dst, Source: src}
}

// NewConstant creates a constant override for destination property dst.
func NewConstant(dst string, value any) Override {
	return Override{Kind: OverrideConstant, Target: dst, Value: value}
}

// IsRedirect reports whether o is a redirect.
func (o Override) IsRedirect() bool {
	return o.Kind == OverrideRedirect
}

// IsConstant reports whether o is a constant.
func (o Override) IsConstant() bool {
	return o.Kind == OverrideConstant
}
