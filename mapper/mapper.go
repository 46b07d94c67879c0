package mapper

import (
	"reflect"

	"go.uber.org/zap"

	"propmap/accessor"
	"propmap/maperr"
	"propmap/registry"
)

// Mapper copies property values between struct instances, applying the
// configurations held in its registry.
//
// A Mapper is safe for concurrent use. Map calls only read the registry.
type Mapper struct {
	registry     *registry.Registry
	introspector accessor.TypeIntrospector
	logger       *zap.Logger
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithRegistry makes the Mapper use an existing registry.
func WithRegistry(r *registry.Registry) Option {
	return func(m *Mapper) {
		if r != nil {
			m.registry = r
		}
	}
}

// WithIntrospector replaces the default reflection-based introspector.
func WithIntrospector(in accessor.TypeIntrospector) Option {
	return func(m *Mapper) {
		if in != nil {
			m.introspector = in
		}
	}
}

// WithLogger sets the logger. Skipped properties are logged at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Mapper) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a Mapper. Without options it owns a fresh registry and a
// caching introspector and logs nothing.
func New(opts ...Option) *Mapper {
	m := &Mapper{
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.registry == nil {
		m.registry = registry.New(registry.WithLogger(m.logger))
	}

	if m.introspector == nil {
		m.introspector = accessor.New()
	}

	m.logger = m.logger.Named("mapper")

	return m
}

// Registry returns the registry holding the mapper's configurations.
func (m *Mapper) Registry() *registry.Registry {
	return m.registry
}

// Logger returns the mapper's logger.
func (m *Mapper) Logger() *zap.Logger {
	return m.logger
}

// Introspector returns the introspector used to describe types.
func (m *Mapper) Introspector() accessor.TypeIntrospector {
	return m.introspector
}

// Map copies the properties of src into dst.
//
// src must be a struct or a non-nil pointer to one; dst must be a non-nil
// pointer to a struct. For every destination property, in declaration order:
// a property carrying the ignore marker is skipped; a property in the
// configuration's ignore set is skipped; a constant override writes its value;
// a redirect override reads the named source property; otherwise the source
// property of the same name is read. Properties with no resolvable value are
// left untouched.
//
// Only nil or malformed arguments fail the call.
func (m *Mapper) Map(src, dst any) error {
	if m == nil {
		return maperr.New(maperr.ErrNullArgument, "map", "mapper is nil")
	}

	sv, err := sourceValue(src)
	if err != nil {
		return err
	}

	dv, err := destinationValue(dst)
	if err != nil {
		return err
	}

	return m.mapValues(sv, dv)
}

// To maps src into a freshly allocated D. D is a struct type or a pointer to
// one, named pointer types included.
func To[D any](m *Mapper, src any) (D, error) {
	var zero D

	t := reflect.TypeFor[D]()
	switch {
	case t.Kind() == reflect.Struct:
		var dst D
		if err := m.Map(src, &dst); err != nil {
			return zero, err
		}

		return dst, nil
	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct:
		dst := reflect.New(t.Elem())
		if err := m.Map(src, dst.Interface()); err != nil {
			return zero, err
		}

		return dst.Convert(t).Interface().(D), nil
	default:
		return zero, maperr.New(maperr.ErrInvalidArgument, "map", "destination type "+t.String()+" is not a struct")
	}
}

func (m *Mapper) mapValues(sv, dv reflect.Value) error {
	pair := registry.NewPair(sv.Type(), dv.Type())

	targets, err := m.introspector.Describe(dv.Type())
	if err != nil {
		return err
	}

	cfg, configured := m.registry.Lookup(pair)
	log := m.logger.With(zap.Stringer("pair", pair))

	for _, d := range targets {
		value, ok := m.resolve(d, sv, &cfg, configured, log)
		if !ok {
			continue
		}

		if err := d.Set(dv, value); err != nil {
			log.Debug("property skipped", zap.String("property", d.Name), zap.Error(err))
		}
	}

	return nil
}

// resolve returns the value to write into d, or false when d is left alone.
// An invalid value with true means "write the zero value".
func (m *Mapper) resolve(
	d accessor.Descriptor,
	sv reflect.Value,
	cfg *registry.Configuration,
	configured bool,
	log *zap.Logger,
) (reflect.Value, bool) {
	if d.Ignored() {
		return reflect.Value{}, false
	}

	sourceName := d.Name

	if configured {
		if cfg.IsIgnored(d.Name) {
			return reflect.Value{}, false
		}

		if o, ok := cfg.Override(d.Name); ok {
			if o.IsConstant() {
				if o.Value == nil {
					return reflect.Value{}, true
				}

				return detach(reflect.ValueOf(o.Value)), true
			}

			sourceName = o.Source
		}
	}

	sd, ok := m.introspector.Lookup(sv.Type(), sourceName)
	if !ok {
		if sourceName != d.Name {
			log.Debug("redirect source not found", zap.String("property", d.Name), zap.String("source", sourceName))
		}

		return reflect.Value{}, false
	}

	value, err := sd.Get(sv)
	if err != nil {
		log.Debug("property skipped", zap.String("property", d.Name), zap.Bool("promoted", sd.Promoted()), zap.Error(err))
		return reflect.Value{}, false
	}

	return value, true
}

// detach copies slices and maps so that destinations never share the backing
// storage of a configured constant. Pointers are written as is.
func detach(v reflect.Value) reflect.Value {
	switch {
	case v.Kind() == reflect.Slice && !v.IsNil():
		c := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		reflect.Copy(c, v)

		return c
	case v.Kind() == reflect.Map && !v.IsNil():
		c := reflect.MakeMapWithSize(v.Type(), v.Len())

		iter := v.MapRange()
		for iter.Next() {
			c.SetMapIndex(iter.Key(), iter.Value())
		}

		return c
	default:
		return v
	}
}

func sourceValue(src any) (reflect.Value, error) {
	if src == nil {
		return reflect.Value{}, maperr.New(maperr.ErrNullArgument, "map", "source is nil")
	}

	v := reflect.ValueOf(src)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, maperr.New(maperr.ErrNullArgument, "map", "source is nil")
		}

		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return reflect.Value{}, maperr.New(maperr.ErrInvalidArgument, "map", "source of type "+v.Type().String()+" is not a struct")
	}

	return v, nil
}

func destinationValue(dst any) (reflect.Value, error) {
	if dst == nil {
		return reflect.Value{}, maperr.New(maperr.ErrNullArgument, "map", "destination is nil")
	}

	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer {
		return reflect.Value{}, maperr.New(maperr.ErrInvalidArgument, "map",
			"destination of type "+v.Type().String()+" is not a pointer to a struct")
	}

	if v.IsNil() {
		return reflect.Value{}, maperr.New(maperr.ErrNullArgument, "map", "destination is nil")
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, maperr.New(maperr.ErrInvalidArgument, "map",
			"destination of type "+v.Type().String()+" is not a struct")
	}

	return v, nil
}
