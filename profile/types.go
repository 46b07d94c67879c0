package profile

import (
	"reflect"
	"sort"
	"strings"
	"sync"

	"propmap/accessor"
	"propmap/maperr"
)

// Property is a property as seen by a Schema.
type Property struct {
	Name string
	// Type is the property type rendered with package names ("time.Time").
	Type string
	// Ignored reports the propmap ignore marker.
	Ignored bool
}

// Schema answers which types and properties exist. Types implements it from
// registered Go types; internal/analyze implements it from source code.
type Schema interface {
	// Properties returns the properties of the named type.
	Properties(typeName string) ([]Property, bool)
	// TypeNames lists the known types in "pkg.Type" form.
	TypeNames() []string
}

// Types resolves profile type names to Go types registered at runtime.
type Types struct {
	mu           sync.RWMutex
	byID         map[string]reflect.Type
	introspector accessor.TypeIntrospector
}

// NewTypes creates an empty name registry. A nil introspector uses a fresh
// accessor.Introspector.
func NewTypes(in accessor.TypeIntrospector) *Types {
	if in == nil {
		in = accessor.New()
	}

	return &Types{
		byID:         make(map[string]reflect.Type),
		introspector: in,
	}
}

// Register adds T to ts.
func Register[T any](ts *Types) error {
	return ts.Add(reflect.TypeFor[T]())
}

// Add registers named struct types (pointers are dereferenced).
func (ts *Types) Add(types ...reflect.Type) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	for _, t := range types {
		t = accessor.Indirect(t)
		if t == nil || t.Kind() != reflect.Struct || t.Name() == "" {
			return maperr.New(maperr.ErrInvalidArgument, "register", "only named struct types can be registered")
		}

		ts.byID[fullName(t)] = t
	}

	return nil
}

// Resolve finds a type by name. Accepted forms:
//   - "model.User" (package name)
//   - "example.com/app/model.User" (import path)
//   - "User" (name only, when unambiguous).
func (ts *Types) Resolve(name string) (reflect.Type, bool) {
	if name == "" {
		return nil, false
	}

	ts.mu.RLock()
	defer ts.mu.RUnlock()

	if t, ok := ts.byID[name]; ok {
		return t, true
	}

	var found reflect.Type

	for _, t := range ts.byID {
		if !nameMatches(t, name) {
			continue
		}

		if found != nil && found != t {
			return nil, false
		}

		found = t
	}

	return found, found != nil
}

// Name returns the short "pkg.Type" name of t, the form Export writes.
func (ts *Types) Name(t reflect.Type) string {
	t = accessor.Indirect(t)
	if t == nil {
		return ""
	}

	return t.String()
}

// TypeNames implements Schema.
func (ts *Types) TypeNames() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	names := make([]string, 0, len(ts.byID))
	for _, t := range ts.byID {
		names = append(names, t.String())
	}

	sort.Strings(names)

	return names
}

// Properties implements Schema.
func (ts *Types) Properties(typeName string) ([]Property, bool) {
	t, ok := ts.Resolve(typeName)
	if !ok {
		return nil, false
	}

	descriptors, err := ts.introspector.Describe(t)
	if err != nil {
		return nil, false
	}

	props := make([]Property, len(descriptors))
	for i, d := range descriptors {
		props[i] = Property{Name: d.Name, Type: d.Type.String(), Ignored: d.Ignored()}
	}

	return props, true
}

func fullName(t reflect.Type) string {
	return t.PkgPath() + "." + t.Name()
}

// nameMatches compares a short or name-only reference against a registered
// type: "model.User" matches "example.com/app/model.User", and "yaml.Node"
// matches "gopkg.in/yaml.v3.Node" through the package name.
func nameMatches(t reflect.Type, name string) bool {
	pkg, typ, qualified := cutLast(name, ".")
	if !qualified {
		return t.Name() == name
	}

	if typ != t.Name() {
		return false
	}

	return t.PkgPath() == pkg || strings.HasSuffix(t.PkgPath(), "/"+pkg) || t.String() == name
}

func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return "", s, false
	}

	return s[:i], s[i+len(sep):], true
}
