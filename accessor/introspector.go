package accessor

import (
	"reflect"
	"slices"
	"sync"

	"propmap/maperr"
)

// TypeIntrospector enumerates the properties of struct types.
type TypeIntrospector interface {
	// Describe returns the properties of t in declaration order.
	Describe(t reflect.Type) ([]Descriptor, error)
	// Lookup returns the property of t with the exact given name.
	Lookup(t reflect.Type, name string) (Descriptor, bool)
}

// table is the cached descriptor table of one struct type.
type table struct {
	descriptors []Descriptor
	byName      map[string]int
}

// Introspector is a TypeIntrospector that builds a descriptor table once per
// type and serves later calls from its cache. It is safe for concurrent use.
type Introspector struct {
	mu     sync.RWMutex
	tables map[reflect.Type]*table
}

// New creates an empty Introspector.
func New() *Introspector {
	return &Introspector{
		tables: make(map[reflect.Type]*table),
	}
}

// Describe returns the properties of t (pointers are dereferenced). The
// returned slice is a copy and may be modified by the caller.
func (in *Introspector) Describe(t reflect.Type) ([]Descriptor, error) {
	tb, err := in.table(t)
	if err != nil {
		return nil, err
	}

	return slices.Clone(tb.descriptors), nil
}

// Lookup returns the property of t named name. It never fails; a type that
// cannot be described has no properties.
func (in *Introspector) Lookup(t reflect.Type, name string) (Descriptor, bool) {
	tb, err := in.table(t)
	if err != nil {
		return Descriptor{}, false
	}

	i, ok := tb.byName[name]
	if !ok {
		return Descriptor{}, false
	}

	return tb.descriptors[i], true
}

// Names returns the property names of t in declaration order.
func (in *Introspector) Names(t reflect.Type) []string {
	tb, err := in.table(t)
	if err != nil {
		return nil
	}

	names := make([]string, len(tb.descriptors))
	for i, d := range tb.descriptors {
		names[i] = d.Name
	}

	return names
}

func (in *Introspector) table(t reflect.Type) (*table, error) {
	t = Indirect(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil, maperr.New(maperr.ErrReflection, "describe", "type "+typeName(t)+" is not a struct")
	}

	in.mu.RLock()
	tb, ok := in.tables[t]
	in.mu.RUnlock()

	if ok {
		return tb, nil
	}

	tb = describe(t)

	in.mu.Lock()
	defer in.mu.Unlock()

	// another goroutine may have won the race; keep the first table
	if existing, ok := in.tables[t]; ok {
		return existing, nil
	}

	in.tables[t] = tb

	return tb, nil
}

// describe builds the descriptor table of struct type t.
//
// reflect.VisibleFields applies Go's selector rules: a shallower field hides
// deeper promoted fields of the same name, and ambiguous fields at the same
// depth are dropped. Embedded fields themselves are not properties; their
// exported fields are promoted in their place. Any duplicate that remains is
// resolved in favour of the first declared field.
func describe(t reflect.Type) *table {
	fields := reflect.VisibleFields(t)

	tb := &table{
		descriptors: make([]Descriptor, 0, len(fields)),
		byName:      make(map[string]int, len(fields)),
	}

	for _, f := range fields {
		if f.Anonymous || !f.IsExported() {
			continue
		}

		if _, dup := tb.byName[f.Name]; dup {
			continue
		}

		tb.byName[f.Name] = len(tb.descriptors)
		tb.descriptors = append(tb.descriptors, Descriptor{
			Name:   f.Name,
			Type:   f.Type,
			Owner:  t,
			Index:  slices.Clone(f.Index),
			Tag:    f.Tag,
			marker: ParseMarker(f),
		})
	}

	return tb
}

// Indirect strips pointer levels from t.
func Indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}
