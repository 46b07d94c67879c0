package mapper

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"propmap/accessor"
	"propmap/internal/match"
	"propmap/maperr"
	"propmap/registry"
)

// Builder edits the configuration of one (source, destination) type pair.
//
// Builder methods chain. The first failure sticks: later calls do nothing and
// Err reports it. A nil *Builder behaves as one that failed with
// ErrNullArgument.
type Builder struct {
	m    *Mapper
	id   uuid.UUID
	pair registry.Pair
	err  error
}

var errNilBuilder = maperr.New(maperr.ErrNullArgument, "builder", "builder is nil")

// Builder returns a builder for the configuration of (src, dst), creating the
// configuration if it does not exist yet. Pointer types are dereferenced; both
// must be struct types.
func (m *Mapper) Builder(src, dst reflect.Type) *Builder {
	if m == nil {
		return &Builder{err: maperr.New(maperr.ErrNullArgument, "create", "mapper is nil")}
	}

	b := &Builder{m: m, pair: registry.NewPair(src, dst)}

	if b.pair.Valid() {
		for _, t := range []reflect.Type{b.pair.Source, b.pair.Destination} {
			if t.Kind() != reflect.Struct {
				b.err = maperr.New(maperr.ErrInvalidArgument, "create", "type "+t.String()+" is not a struct").
					WithPair(b.pair.String())

				return b
			}
		}
	}

	b.id, b.err = m.registry.Create(b.pair)

	return b
}

// ID returns the configuration identifier, or uuid.Nil if creation failed.
func (b *Builder) ID() uuid.UUID {
	if b == nil {
		return uuid.Nil
	}

	return b.id
}

// Source returns the source struct type.
func (b *Builder) Source() reflect.Type {
	if b == nil {
		return nil
	}

	return b.pair.Source
}

// Destination returns the destination struct type.
func (b *Builder) Destination() reflect.Type {
	if b == nil {
		return nil
	}

	return b.pair.Destination
}

// Err returns the first error met by the builder.
func (b *Builder) Err() error {
	if b == nil {
		return errNilBuilder
	}

	return b.err
}

// Configuration returns a snapshot of the configuration.
func (b *Builder) Configuration() (registry.Configuration, error) {
	if b == nil {
		return registry.Configuration{}, errNilBuilder
	}

	if b.err != nil {
		return registry.Configuration{}, b.err
	}

	return b.m.registry.LookupByID(b.id)
}

// Ignore stops dst from being written, dropping any override for it.
func (b *Builder) Ignore(dst string) *Builder {
	if b.failed() {
		return b.orNull()
	}

	if dst == "" {
		return b.fail(b.invalid("ignore", "", "destination property name is empty"))
	}

	if _, err := b.property("ignore", b.pair.Destination, dst, nil); err != nil {
		return b.fail(err)
	}

	return b.update(func(c *registry.Configuration) error { return c.Ignore(dst) })
}

// Redirect makes dst read from source property src. The source property type
// must be assignable to the destination property type.
func (b *Builder) Redirect(src, dst string) *Builder {
	if b.failed() {
		return b.orNull()
	}

	if src == "" || dst == "" {
		return b.fail(b.invalid("redirect", dst, "source and destination property names are required"))
	}

	// Source suggestions favour properties of the destination's type.
	var want reflect.Type
	if d, ok := b.m.introspector.Lookup(b.pair.Destination, dst); ok {
		want = d.Type
	}

	sd, err := b.property("redirect", b.pair.Source, src, want)
	if err != nil {
		return b.fail(err)
	}

	dd, err := b.property("redirect", b.pair.Destination, dst, nil)
	if err != nil {
		return b.fail(err)
	}

	if !match.Compatibility(sd.Type, dd.Type).Mappable() {
		return b.fail(b.invalid("redirect", dst,
			fmt.Sprintf("source property %s of type %s is not assignable to %s", src, sd.Type, dd.Type)))
	}

	b.warnMarked(dd, "redirect")

	return b.update(func(c *registry.Configuration) error { return c.Redirect(src, dst) })
}

// AssignConstant makes dst always receive value. A nil value writes the zero
// value; any other value must be assignable to the property type. Slices and
// maps are copied on every write, elements and pointers are shared.
func (b *Builder) AssignConstant(dst string, value any) *Builder {
	if b.failed() {
		return b.orNull()
	}

	if dst == "" {
		return b.fail(b.invalid("assign constant", "", "destination property name is empty"))
	}

	dd, err := b.property("assign constant", b.pair.Destination, dst, nil)
	if err != nil {
		return b.fail(err)
	}

	if value != nil {
		if vt := reflect.TypeOf(value); !vt.AssignableTo(dd.Type) {
			return b.fail(b.invalid("assign constant", dst,
				fmt.Sprintf("value of type %s is not assignable to %s", vt, dd.Type)))
		}
	}

	b.warnMarked(dd, "constant")

	return b.update(func(c *registry.Configuration) error { return c.AssignConstant(dst, value) })
}

// MapAll drops every ignore entry and override, restoring plain name
// matching. It does nothing if the configuration no longer exists.
func (b *Builder) MapAll() *Builder {
	if b.failed() {
		return b.orNull()
	}

	err := b.m.registry.Update(b.id, func(c *registry.Configuration) error {
		c.ResetToMapAll()
		return nil
	})
	if err != nil && !errors.Is(err, maperr.ErrConfigurationNotFound) {
		return b.fail(err)
	}

	return b
}

// Remove deletes the configuration. Mapping the pair afterwards uses plain
// name matching; further edits through this builder fail with
// ErrConfigurationNotFound.
func (b *Builder) Remove() *Builder {
	if b.failed() {
		return b.orNull()
	}

	if err := b.m.registry.Remove(b.id); err != nil {
		return b.fail(err)
	}

	return b
}

func (b *Builder) failed() bool {
	return b == nil || b.err != nil
}

func (b *Builder) orNull() *Builder {
	if b == nil {
		return &Builder{err: errNilBuilder}
	}

	return b
}

func (b *Builder) fail(err error) *Builder {
	b.err = err
	return b
}

func (b *Builder) update(fn func(*registry.Configuration) error) *Builder {
	if err := b.m.registry.Update(b.id, fn); err != nil {
		var e *maperr.Error
		if errors.As(err, &e) && e.Pair == "" {
			e.Pair = b.pair.String()
		}

		return b.fail(err)
	}

	return b
}

func (b *Builder) invalid(op, property, message string) error {
	return maperr.New(maperr.ErrInvalidArgument, op, message).WithPair(b.pair.String()).WithProperty(property)
}

// property looks name up on t and suggests close names when it is missing.
// A non-nil want ranks suggestions of that type first.
func (b *Builder) property(op string, t reflect.Type, name string, want reflect.Type) (accessor.Descriptor, error) {
	if d, ok := b.m.introspector.Lookup(t, name); ok {
		return d, nil
	}

	msg := "no property " + name + " on " + t.String()

	descriptors, err := b.m.introspector.Describe(t)
	if err == nil {
		fields := make([]match.Field, len(descriptors))
		for i, d := range descriptors {
			fields[i] = match.Field{Name: d.Name, Type: d.Type}
		}

		if suggestions := match.Rank(name, want, fields).Top(match.DefaultLimit).Names(); len(suggestions) > 0 {
			msg += " (did you mean " + strings.Join(suggestions, ", ") + "?)"
		}
	}

	return accessor.Descriptor{}, b.invalid(op, name, msg)
}

func (b *Builder) warnMarked(d accessor.Descriptor, rule string) {
	if d.Ignored() {
		b.m.logger.Warn("override targets a property carrying the ignore marker and will not apply",
			zap.Stringer("pair", b.pair),
			zap.String("property", d.Name),
			zap.String("rule", rule),
		)
	}
}
