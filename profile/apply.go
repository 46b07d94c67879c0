package profile

import (
	"fmt"
	"reflect"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"propmap/accessor"
	"propmap/internal/match"
	"propmap/maperr"
	"propmap/mapper"
	"propmap/registry"
)

// Apply validates f against types and then installs every mapping into m.
// Each mapping replaces the existing configuration of its pair: the pair is
// reset to name matching, then ignore entries, 121 redirects and fields are
// applied in that order.
//
// Every mapping is checked against the Go types before the registry is
// touched, and each pair is installed in a single registry update. A failed
// Apply leaves m unchanged.
func Apply(f *File, m *mapper.Mapper, types *Types) error {
	if m == nil || types == nil {
		return maperr.New(maperr.ErrNullArgument, "apply", "mapper and types are required")
	}

	if err := Validate(f, types).Err(); err != nil {
		return err
	}

	plans := make([]plan, 0, len(f.Mappings))

	for i := range f.Mappings {
		p, err := stage(&f.Mappings[i], m.Introspector(), types)
		if err != nil {
			return err
		}

		plans = append(plans, p)
	}

	log := m.Logger().Named("profile")

	for _, p := range plans {
		if err := p.install(m.Registry()); err != nil {
			return err
		}

		log.Debug("mapping applied", zap.Stringer("pair", p.pair),
			zap.Int("ignored", len(p.ignore)), zap.Int("overrides", len(p.overrides)))
	}

	log.Info("profile applied", zap.Int("mappings", len(plans)))

	return nil
}

// plan is a mapping checked against the Go types, ready to install.
type plan struct {
	pair      registry.Pair
	ignore    []string
	overrides []registry.Override
}

// stage resolves the properties of pm and decodes its constants without
// touching any registry.
func stage(pm *Mapping, in accessor.TypeIntrospector, types *Types) (plan, error) {
	src, _ := types.Resolve(pm.Source)
	dst, _ := types.Resolve(pm.Target)

	p := plan{pair: registry.NewPair(src, dst)}
	if !p.pair.Valid() {
		return plan{}, maperr.New(maperr.ErrInvalidArgument, "apply", "types are not registered").
			WithPair(pm.Label())
	}

	for _, name := range pm.Ignore {
		if _, err := p.property(in, p.pair.Destination, name); err != nil {
			return plan{}, err
		}

		p.ignore = append(p.ignore, name)
	}

	sources := make([]string, 0, len(pm.OneToOne))
	for s := range pm.OneToOne {
		sources = append(sources, s)
	}

	sort.Strings(sources)

	for _, s := range sources {
		if err := p.redirect(in, s, pm.OneToOne[s]); err != nil {
			return plan{}, err
		}
	}

	for _, fm := range pm.Fields {
		if fm.Source != "" {
			if err := p.redirect(in, fm.Source, fm.Target); err != nil {
				return plan{}, err
			}

			continue
		}

		d, err := p.property(in, p.pair.Destination, fm.Target)
		if err != nil {
			return plan{}, err
		}

		value, err := decodeConst(d, fm)
		if err != nil {
			return plan{}, err
		}

		p.overrides = append(p.overrides, registry.NewConstant(fm.Target, value))
	}

	return p, nil
}

func (p *plan) redirect(in accessor.TypeIntrospector, src, dst string) error {
	sd, err := p.property(in, p.pair.Source, src)
	if err != nil {
		return err
	}

	dd, err := p.property(in, p.pair.Destination, dst)
	if err != nil {
		return err
	}

	if !match.Compatibility(sd.Type, dd.Type).Mappable() {
		return maperr.New(maperr.ErrInvalidArgument, "apply",
			fmt.Sprintf("source property %s of type %s is not assignable to %s", src, sd.Type, dd.Type)).
			WithPair(p.pair.String()).WithProperty(dst)
	}

	p.overrides = append(p.overrides, registry.NewRedirect(src, dst))

	return nil
}

func (p *plan) property(in accessor.TypeIntrospector, t reflect.Type, name string) (accessor.Descriptor, error) {
	d, ok := in.Lookup(t, name)
	if !ok {
		return accessor.Descriptor{}, maperr.New(maperr.ErrInvalidArgument, "apply", "no property "+name+" on "+t.String()).
			WithPair(p.pair.String()).WithProperty(name)
	}

	return d, nil
}

// install replaces the configuration of the pair in one update.
func (p *plan) install(r *registry.Registry) error {
	id, err := r.Create(p.pair)
	if err != nil {
		return err
	}

	return r.Update(id, func(c *registry.Configuration) error {
		c.ResetToMapAll()

		for _, name := range p.ignore {
			if err := c.Ignore(name); err != nil {
				return err
			}
		}

		for _, o := range p.overrides {
			var err error
			if o.IsRedirect() {
				err = c.Redirect(o.Source, o.Target)
			} else {
				err = c.AssignConstant(o.Target, o.Value)
			}

			if err != nil {
				return err
			}
		}

		return nil
	})
}

// decodeConst decodes the const node of fm into the type of the target
// property d.
func decodeConst(d accessor.Descriptor, fm Field) (any, error) {
	if fm.IsNullConst() {
		return nil, nil
	}

	v := reflect.New(d.Type)
	if err := fm.Const.Decode(v.Interface()); err != nil {
		return nil, maperr.New(maperr.ErrInvalidArgument, "apply",
			fmt.Sprintf("const line %d does not decode into %s: %v", fm.Const.Line, d.Type, err)).
			WithProperty(fm.Target)
	}

	return v.Elem().Interface(), nil
}

// Export snapshots every configuration of m as a profile. Redirects become
// fields with a source, constants become fields with a const.
func Export(m *mapper.Mapper, types *Types) (*File, error) {
	if m == nil || types == nil {
		return nil, maperr.New(maperr.ErrNullArgument, "export", "mapper and types are required")
	}

	f := &File{Version: CurrentVersion}

	for _, cfg := range m.Registry().List() {
		pm := Mapping{
			Source: types.Name(cfg.Pair.Source),
			Target: types.Name(cfg.Pair.Destination),
			Ignore: cfg.Ignored(),
		}

		for _, o := range cfg.Overrides() {
			fm, err := exportOverride(o)
			if err != nil {
				return nil, fmt.Errorf("export %s: %w", cfg.Pair, err)
			}

			pm.Fields = append(pm.Fields, fm)
		}

		f.Mappings = append(f.Mappings, pm)
	}

	return f, nil
}

func exportOverride(o registry.Override) (Field, error) {
	fm := Field{Target: o.Target}

	if o.IsRedirect() {
		fm.Source = o.Source
		return fm, nil
	}

	if o.Value == nil {
		fm.Const = yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		return fm, nil
	}

	if err := fm.Const.Encode(o.Value); err != nil {
		return Field{}, fmt.Errorf("encode const for %s: %w", o.Target, err)
	}

	return fm, nil
}
