package profile

import (
	"fmt"
	"sort"

	"propmap/internal/diagnostic"
	"propmap/internal/match"
)

// Validate checks f against schema. It is a structural check: types and
// properties must exist, and each target property may carry one rule only.
// Type compatibility is compared by type name and only warned about; Apply
// performs the exact assignability check.
func Validate(f *File, schema Schema) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError(diagnostic.CodeEmptyRule, "profile is nil", "", "")
		return res
	}

	if schema == nil {
		res.AddError(diagnostic.CodeUnknownType, "schema is nil", "", "")
		return res
	}

	if f.Version != "" && f.Version != CurrentVersion {
		res.AddError(diagnostic.CodeUnsupportedVersion,
			fmt.Sprintf("unsupported profile version %q (want %q)", f.Version, CurrentVersion), "", "")
	}

	seenPairs := map[string]string{}

	for i := range f.Mappings {
		m := &f.Mappings[i]
		label := m.Label()

		srcProps, srcOK := lookupType(res, schema, label, m.Source, "source")
		dstProps, dstOK := lookupType(res, schema, label, m.Target, "target")

		if m.Source != "" && m.Target != "" {
			if prev, dup := seenPairs[label]; dup {
				res.AddError(diagnostic.CodeDuplicatePair,
					fmt.Sprintf("mapping is declared twice (first as %s)", prev), label, "")
			} else {
				seenPairs[label] = fmt.Sprintf("mappings[%d]", i)
			}
		}

		v := &mappingValidator{
			res:     res,
			label:   label,
			src:     indexProperties(srcProps),
			dst:     indexProperties(dstProps),
			srcOK:   srcOK,
			dstOK:   dstOK,
			targets: map[string]string{},
		}

		v.validate(m)
	}

	return res
}

func lookupType(res *diagnostic.Diagnostics, schema Schema, label, name, side string) ([]Property, bool) {
	if name == "" {
		res.AddError(diagnostic.CodeUnknownType, side+" type is empty", label, "")
		return nil, false
	}

	props, ok := schema.Properties(name)
	if !ok {
		res.AddError(diagnostic.CodeUnknownType, fmt.Sprintf("%s type %q not found", side, name), label, "",
			match.Suggest(name, schema.TypeNames(), 0)...)

		return nil, false
	}

	return props, true
}

type propertyIndex struct {
	byName map[string]Property
	names  []string
}

func indexProperties(props []Property) propertyIndex {
	idx := propertyIndex{byName: make(map[string]Property, len(props))}
	for _, p := range props {
		idx.byName[p.Name] = p
		idx.names = append(idx.names, p.Name)
	}

	return idx
}

type mappingValidator struct {
	res          *diagnostic.Diagnostics
	label        string
	src, dst     propertyIndex
	srcOK, dstOK bool
	// targets maps a target property to the rule that claimed it.
	targets map[string]string
}

func (v *mappingValidator) validate(m *Mapping) {
	ignored := map[string]bool{}

	for _, name := range m.Ignore {
		if ignored[name] {
			v.res.AddWarning(diagnostic.CodeConflictingRule, "property is ignored twice", v.label, name)
			continue
		}

		ignored[name] = true
		v.target(name, "ignore")
	}

	sources := make([]string, 0, len(m.OneToOne))
	for src := range m.OneToOne {
		sources = append(sources, src)
	}

	sort.Strings(sources)

	for _, src := range sources {
		dst := m.OneToOne[src]
		v.redirect(src, dst, "121", ignored)
	}

	for i, fm := range m.Fields {
		rule := fmt.Sprintf("fields[%d]", i)

		switch {
		case fm.Target == "":
			v.res.AddError(diagnostic.CodeEmptyRule, rule+" has no target", v.label, "")
		case fm.Source == "" && !fm.HasConst():
			v.res.AddError(diagnostic.CodeEmptyRule, rule+" needs a source or a const", v.label, fm.Target)
		case fm.Source != "" && fm.HasConst():
			v.res.AddError(diagnostic.CodeConflictingRule, rule+" has both a source and a const", v.label, fm.Target)
		case fm.Source != "":
			v.redirect(fm.Source, fm.Target, rule, ignored)
		default:
			v.constant(fm.Target, rule, ignored)
		}
	}
}

func (v *mappingValidator) redirect(src, dst, rule string, ignored map[string]bool) {
	sp, srcFound := v.property(v.src, v.srcOK, src, "source")
	dp, dstFound := v.claim(dst, rule, ignored)

	if srcFound && dstFound && sp.Type != "" && dp.Type != "" && sp.Type != dp.Type {
		v.res.AddWarning(diagnostic.CodeTypeMismatch,
			fmt.Sprintf("source %s is %s but target is %s", src, sp.Type, dp.Type), v.label, dst)
	}
}

func (v *mappingValidator) constant(dst, rule string, ignored map[string]bool) {
	v.claim(dst, rule, ignored)
}

// claim records rule as the owner of target property dst.
func (v *mappingValidator) claim(dst, rule string, ignored map[string]bool) (Property, bool) {
	if dst == "" {
		v.res.AddError(diagnostic.CodeEmptyRule, rule+" has an empty target", v.label, "")
		return Property{}, false
	}

	if ignored[dst] {
		v.res.AddError(diagnostic.CodeConflictingRule, "property is both ignored and set by "+rule, v.label, dst)
	}

	return v.target(dst, rule)
}

func (v *mappingValidator) target(dst, rule string) (Property, bool) {
	if prev, ok := v.targets[dst]; ok && rule != "ignore" && prev != "ignore" {
		v.res.AddError(diagnostic.CodeConflictingRule,
			fmt.Sprintf("property is set by both %s and %s", prev, rule), v.label, dst)
	} else if !ok {
		v.targets[dst] = rule
	}

	p, found := v.property(v.dst, v.dstOK, dst, "target")
	if found && p.Ignored && rule != "ignore" {
		v.res.AddInfo(diagnostic.CodeIgnoredByMarker,
			"property carries the ignore marker; "+rule+" has no effect", v.label, dst)
	}

	return p, found
}

func (v *mappingValidator) property(idx propertyIndex, typeKnown bool, name, side string) (Property, bool) {
	if !typeKnown {
		return Property{}, false
	}

	if p, ok := idx.byName[name]; ok {
		return p, true
	}

	v.res.AddError(diagnostic.CodeUnknownProperty, fmt.Sprintf("no %s property %q", side, name), v.label, name,
		match.Suggest(name, idx.names, 0)...)

	return Property{}, false
}
