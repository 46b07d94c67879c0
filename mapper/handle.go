package mapper

import (
	"reflect"

	"github.com/google/uuid"

	"propmap/registry"
)

// Handle is a typed Builder for the configuration of (S, D).
//
//	h := mapper.Create[model.User, view.User](m).
//	    Ignore("Password").
//	    Redirect("FirstName", "FullName")
//	if err := h.Err(); err != nil {
//	    return err
//	}
//
// A zero Handle behaves as one that failed with ErrNullArgument.
type Handle[S, D any] struct {
	b *Builder
}

// Create returns the handle of the (S, D) configuration, creating it if
// needed. Calling Create again for the same pair yields the same ID.
func Create[S, D any](m *Mapper) Handle[S, D] {
	p := registry.PairOf[S, D]()
	return Handle[S, D]{b: m.Builder(p.Source, p.Destination)}
}

// Ignore stops dst from being written.
func (h Handle[S, D]) Ignore(dst string) Handle[S, D] {
	return Handle[S, D]{b: h.b.Ignore(dst)}
}

// Redirect makes dst read from source property src.
func (h Handle[S, D]) Redirect(src, dst string) Handle[S, D] {
	return Handle[S, D]{b: h.b.Redirect(src, dst)}
}

// AssignConstant makes dst always receive value.
func (h Handle[S, D]) AssignConstant(dst string, value any) Handle[S, D] {
	return Handle[S, D]{b: h.b.AssignConstant(dst, value)}
}

// MapAll restores plain name matching.
func (h Handle[S, D]) MapAll() Handle[S, D] {
	return Handle[S, D]{b: h.b.MapAll()}
}

// Remove deletes the configuration.
func (h Handle[S, D]) Remove() Handle[S, D] {
	return Handle[S, D]{b: h.b.Remove()}
}

// ID returns the configuration identifier.
func (h Handle[S, D]) ID() uuid.UUID {
	return h.b.ID()
}

// Source returns the source struct type.
func (h Handle[S, D]) Source() reflect.Type {
	return h.b.Source()
}

// Destination returns the destination struct type.
func (h Handle[S, D]) Destination() reflect.Type {
	return h.b.Destination()
}

// Err returns the first error met along the chain.
func (h Handle[S, D]) Err() error {
	return h.b.Err()
}

// Configuration returns a snapshot of the configuration.
func (h Handle[S, D]) Configuration() (registry.Configuration, error) {
	return h.b.Configuration()
}

// Builder returns the untyped builder behind the handle.
func (h Handle[S, D]) Builder() *Builder {
	return h.b
}
