package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/types"
	"reflect"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedTypes |
	packages.NeedImports

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph  *TypeGraph
	dir    string
	logger *zap.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDir sets the directory package patterns are resolved from.
func WithDir(dir string) Option {
	return func(a *Analyzer) {
		a.dir = dir
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		graph:  NewTypeGraph(),
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.logger = a.logger.Named("analyze")

	return a
}

// LoadPackages loads the specified packages and adds their types to the graph.
// Patterns are standard Go package patterns (e.g., "./store", "propmap/warehouse").
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	})

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
		a.logger.Debug("package loaded", zap.String("path", pkg.PkgPath), zap.Int("types", len(a.graph.Packages[pkg.PkgPath].Types)))
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// processPackage extracts the exported named types of a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() || typeName.IsAlias() {
			continue
		}

		id := TypeID{PkgPath: pkg.PkgPath, Name: name}
		info := &TypeInfo{
			ID:      id,
			PkgName: pkg.Name,
			GoType:  typeName.Type(),
		}

		if st, ok := typeName.Type().Underlying().(*types.Struct); ok {
			info.Struct = true
			info.Fields = visibleFields(st)
		}

		a.graph.Types[id] = info
		pkgInfo.Types = append(pkgInfo.Types, id)
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo
}

// visibleFields lists the exported fields reachable on st without
// qualification, following Go's selector rules the way reflect.VisibleFields
// does: a shallower name hides deeper ones and names found twice at the same
// depth are dropped. Embedded fields are traversed but not listed.
func visibleFields(st *types.Struct) []FieldInfo {
	var (
		out     []FieldInfo
		hidden  = map[string]bool{}
		visited = map[*types.Struct]bool{st: true}
		current = []*types.Struct{st}
	)

	type candidate struct {
		field    *types.Var
		tag      string
		embedded bool
	}

	for depth := 0; len(current) > 0; depth++ {
		found := map[string][]candidate{}

		var (
			order []string
			next  []*types.Struct
		)

		for _, s := range current {
			for i := range s.NumFields() {
				f := s.Field(i)
				if hidden[f.Name()] {
					continue
				}

				if _, ok := found[f.Name()]; !ok {
					order = append(order, f.Name())
				}

				found[f.Name()] = append(found[f.Name()], candidate{field: f, tag: s.Tag(i), embedded: f.Embedded()})

				if !f.Embedded() {
					continue
				}

				if es := embeddedStruct(f.Type()); es != nil && !visited[es] {
					visited[es] = true
					next = append(next, es)
				}
			}
		}

		for _, name := range order {
			hidden[name] = true

			cands := found[name]
			if len(cands) > 1 || cands[0].embedded || !cands[0].field.Exported() {
				continue
			}

			f := cands[0].field
			out = append(out, FieldInfo{
				Name:   f.Name(),
				Type:   types.TypeString(f.Type(), qualifyByName),
				GoType: f.Type(),
				Tag:    reflect.StructTag(cands[0].tag),
				Depth:  depth,
			})
		}

		current = next
	}

	return out
}

func embeddedStruct(t types.Type) *types.Struct {
	if p, ok := t.Underlying().(*types.Pointer); ok {
		t = p.Elem()
	}

	st, _ := t.Underlying().(*types.Struct)

	return st
}

func qualifyByName(p *types.Package) string {
	return p.Name()
}
