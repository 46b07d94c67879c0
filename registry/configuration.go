package registry

import (
	"reflect"
	"slices"

	"github.com/google/uuid"

	"propmap/maperr"
)

// Pair identifies a mapping by its source and destination struct types.
type Pair struct {
	Source      reflect.Type
	Destination reflect.Type
}

// NewPair builds a Pair, stripping pointer levels from both types.
func NewPair(src, dst reflect.Type) Pair {
	return Pair{Source: indirect(src), Destination: indirect(dst)}
}

// PairOf builds the Pair of two static types.
func PairOf[S, D any]() Pair {
	return NewPair(reflect.TypeFor[S](), reflect.TypeFor[D]())
}

// Valid reports whether both sides are set.
func (p Pair) Valid() bool {
	return p.Source != nil && p.Destination != nil
}

// String returns "Source->Destination".
func (p Pair) String() string {
	return typeString(p.Source) + "->" + typeString(p.Destination)
}

// Configuration is the rule set of one type pair: destination properties to
// skip, and overrides that redirect or replace a property's value.
//
// A target name is never both ignored and overridden. Values returned by the
// Registry are snapshots: mutating them does not affect the registry; use
// Registry.Update instead.
type Configuration struct {
	// ID is the stable identifier handed out by Registry.Create.
	ID uuid.UUID
	// Pair is the source and destination type.
	Pair Pair
	// MapAll is true while the configuration holds no rules.
	MapAll bool

	ignored   []string
	overrides []Override
}

func newConfiguration(id uuid.UUID, pair Pair) *Configuration {
	return &Configuration{ID: id, Pair: pair, MapAll: true}
}

// Ignored returns the ignored destination property names in insertion order.
func (c *Configuration) Ignored() []string {
	return slices.Clone(c.ignored)
}

// Overrides returns the overrides in insertion order.
func (c *Configuration) Overrides() []Override {
	return slices.Clone(c.overrides)
}

// IsIgnored reports whether name is in the ignore set.
func (c *Configuration) IsIgnored(name string) bool {
	return slices.Contains(c.ignored, name)
}

// Override returns the override for destination property name.
func (c *Configuration) Override(name string) (Override, bool) {
	i := c.overrideIndex(name)
	if i < 0 {
		return Override{}, false
	}

	return c.overrides[i], true
}

// Ignore adds name to the ignore set and drops any override for it.
func (c *Configuration) Ignore(name string) error {
	if name == "" {
		return maperr.New(maperr.ErrInvalidArgument, "ignore", "destination property name is empty").WithPair(c.Pair.String())
	}

	c.removeOverride(name)

	if !c.IsIgnored(name) {
		c.ignored = append(c.ignored, name)
	}

	c.MapAll = false

	return nil
}

// Redirect makes destination property dst read from source property src.
// Any ignore entry or previous override for dst is dropped.
func (c *Configuration) Redirect(src, dst string) error {
	if src == "" || dst == "" {
		return maperr.New(maperr.ErrInvalidArgument, "redirect", "source and destination property names are required").
			WithPair(c.Pair.String())
	}

	c.put(NewRedirect(src, dst))

	return nil
}

// AssignConstant makes destination property dst always receive value.
// Any ignore entry or previous override for dst is dropped.
func (c *Configuration) AssignConstant(dst string, value any) error {
	if dst == "" {
		return maperr.New(maperr.ErrInvalidArgument, "assign constant", "destination property name is empty").
			WithPair(c.Pair.String())
	}

	c.put(NewConstant(dst, value))

	return nil
}

// ResetToMapAll drops every rule and restores plain name matching.
func (c *Configuration) ResetToMapAll() {
	c.ignored = nil
	c.overrides = nil
	c.MapAll = true
}

func (c *Configuration) put(o Override) {
	c.ignored = slices.DeleteFunc(c.ignored, func(n string) bool { return n == o.Target })
	c.removeOverride(o.Target)
	c.overrides = append(c.overrides, o)
	c.MapAll = false
}

func (c *Configuration) removeOverride(name string) {
	c.overrides = slices.DeleteFunc(c.overrides, func(o Override) bool { return o.Target == name })
}

func (c *Configuration) overrideIndex(name string) int {
	return slices.IndexFunc(c.overrides, func(o Override) bool { return o.Target == name })
}

// clone returns a deep copy whose slices can be mutated independently.
func (c *Configuration) clone() *Configuration {
	cp := *c
	cp.ignored = slices.Clone(c.ignored)
	cp.overrides = slices.Clone(c.overrides)

	return &cp
}

func indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}
