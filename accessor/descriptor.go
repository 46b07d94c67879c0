package accessor

import (
	"fmt"
	"reflect"

	"propmap/maperr"
)

// Descriptor describes one property of a struct type: an exported field,
// declared directly or promoted from an embedded struct.
//
// Descriptors are immutable once returned by an Introspector. Index is shared
// with the cached descriptor table and must not be modified.
type Descriptor struct {
	// Name is the Go field name.
	Name string
	// Type is the field type.
	Type reflect.Type
	// Owner is the struct type that declares (or promotes) the field.
	Owner reflect.Type
	// Index is the field index sequence for reflect.Value.FieldByIndex.
	Index []int
	// Tag is the raw struct tag.
	Tag reflect.StructTag

	marker Marker
}

// Ignored reports whether the field carries the propmap ignore marker.
func (d Descriptor) Ignored() bool {
	return d.marker.Ignored
}

// Promoted reports whether the field is reached through an embedded struct.
func (d Descriptor) Promoted() bool {
	return len(d.Index) > 1
}

// String returns "Owner.Name".
func (d Descriptor) String() string {
	if d.Owner == nil {
		return d.Name
	}

	return d.Owner.String() + "." + d.Name
}

// Get reads the property from instance, which must be a struct of type Owner
// or a non-nil pointer to one.
func (d Descriptor) Get(instance reflect.Value) (reflect.Value, error) {
	v, err := d.bind(instance, "get")
	if err != nil {
		return reflect.Value{}, err
	}

	fv, err := v.FieldByIndexErr(d.Index)
	if err != nil {
		return reflect.Value{}, maperr.New(maperr.ErrReflection, "get", err.Error()).WithProperty(d.String())
	}

	return fv, nil
}

// Set writes value into the property of instance, which must be an
// addressable struct of type Owner or a non-nil pointer to one. Nil embedded
// struct pointers on the way are allocated. An invalid (zero) value resets the
// property to its zero value.
func (d Descriptor) Set(instance reflect.Value, value reflect.Value) error {
	v, err := d.bind(instance, "set")
	if err != nil {
		return err
	}

	if !v.CanAddr() {
		return maperr.New(maperr.ErrReflection, "set", "instance is not addressable").WithProperty(d.String())
	}

	fv, err := fieldByIndexAlloc(v, d.Index)
	if err != nil {
		return maperr.New(maperr.ErrReflection, "set", err.Error()).WithProperty(d.String())
	}

	if !fv.CanSet() {
		return maperr.New(maperr.ErrReflection, "set", "field is not settable").WithProperty(d.String())
	}

	if !value.IsValid() {
		fv.SetZero()
		return nil
	}

	if !value.Type().AssignableTo(d.Type) {
		return maperr.New(maperr.ErrReflection, "set",
			fmt.Sprintf("value of type %s is not assignable to %s", value.Type(), d.Type)).WithProperty(d.String())
	}

	fv.Set(value)

	return nil
}

// bind dereferences instance and checks that it is an Owner value.
func (d Descriptor) bind(instance reflect.Value, op string) (reflect.Value, error) {
	for instance.IsValid() && instance.Kind() == reflect.Pointer {
		if instance.IsNil() {
			return reflect.Value{}, maperr.New(maperr.ErrReflection, op, "nil instance").WithProperty(d.String())
		}

		instance = instance.Elem()
	}

	if !instance.IsValid() || instance.Type() != d.Owner {
		got := "invalid value"
		if instance.IsValid() {
			got = instance.Type().String()
		}

		return reflect.Value{}, maperr.New(maperr.ErrReflection, op,
			fmt.Sprintf("instance of type %s does not declare the property", got)).WithProperty(d.String())
	}

	return instance, nil
}

// fieldByIndexAlloc is FieldByIndex that allocates nil embedded pointers.
func fieldByIndexAlloc(v reflect.Value, index []int) (reflect.Value, error) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, fmt.Errorf("cannot allocate unexported embedded %s", v.Type())
				}

				v.Set(reflect.New(v.Type().Elem()))
			}

			v = v.Elem()
		}

		v = v.Field(x)
	}

	return v, nil
}
