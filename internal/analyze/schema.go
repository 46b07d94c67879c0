package analyze

import (
	"sort"
	"strings"

	"propmap/accessor"
	"propmap/profile"
)

var _ profile.Schema = (*TypeGraph)(nil)

// Resolve resolves a type name like:
// - "store.Customer" (last import path element or package name)
// - "propmap/store.Customer" (import path)
// - "Customer" (name only, when unambiguous).
func (g *TypeGraph) Resolve(name string) *TypeInfo {
	if g == nil || name == "" {
		return nil
	}

	lastDot := strings.LastIndex(name, ".")
	if lastDot < 0 {
		return g.unique(func(t *TypeInfo) bool { return t.ID.Name == name })
	}

	pkg, typeName := name[:lastDot], name[lastDot+1:]
	if pkg == "" || typeName == "" {
		return nil
	}

	// 1) exact match (for fully qualified import path)
	if t := g.GetType(TypeID{PkgPath: pkg, Name: typeName}); t != nil {
		return t
	}

	// 2) suffix or package name match ("store.Customer", "yaml.Node")
	return g.unique(func(t *TypeInfo) bool {
		return t.ID.Name == typeName && (strings.HasSuffix(t.ID.PkgPath, "/"+pkg) || t.PkgName == pkg)
	})
}

func (g *TypeGraph) unique(match func(*TypeInfo) bool) *TypeInfo {
	var found *TypeInfo

	for _, t := range g.Types {
		if !match(t) {
			continue
		}

		if found != nil {
			return nil
		}

		found = t
	}

	return found
}

// Properties implements profile.Schema.
func (g *TypeGraph) Properties(typeName string) ([]profile.Property, bool) {
	t := g.Resolve(typeName)
	if t == nil || !t.Struct {
		return nil, false
	}

	props := make([]profile.Property, len(t.Fields))
	for i, f := range t.Fields {
		props[i] = profile.Property{
			Name:    f.Name,
			Type:    f.Type,
			Ignored: accessor.ParseMarkerTag(f.Tag.Get(accessor.TagName)).Ignored,
		}
	}

	return props, true
}

// TypeNames implements profile.Schema. Only struct types are listed.
func (g *TypeGraph) TypeNames() []string {
	if g == nil {
		return nil
	}

	names := make([]string, 0, len(g.Types))
	for _, t := range g.Types {
		if t.Struct {
			names = append(names, t.ShortName())
		}
	}

	sort.Strings(names)

	return names
}
