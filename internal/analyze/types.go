package analyze

import (
	"go/types"
	"reflect"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "propmap/store"
	Name    string // e.g., "Customer"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeInfo describes a named type of a loaded package.
type TypeInfo struct {
	ID      TypeID
	PkgName string
	// Struct is false for named non-struct types; they have no properties.
	Struct bool
	// Fields are the visible exported fields, promoted ones included.
	Fields []FieldInfo
	GoType types.Type
}

// ShortName returns "pkg.Type", the form reflect.Type.String uses.
func (t *TypeInfo) ShortName() string {
	return t.PkgName + "." + t.ID.Name
}

// FieldInfo describes a struct field visible on a type.
type FieldInfo struct {
	Name string
	// Type is the field type qualified by package name ("time.Time").
	Type   string
	GoType types.Type
	Tag    reflect.StructTag
	// Depth is 0 for fields declared on the type itself.
	Depth int
}

// Promoted reports whether the field comes from an embedded struct.
func (f *FieldInfo) Promoted() bool {
	return f.Depth > 0
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all exported named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []TypeID // Named types defined in this package
}
