// Package registry holds mapping configurations: per (source type,
// destination type) rule sets of ignored destination properties and
// overrides that redirect a property to another source property or pin it to
// a constant.
//
// A Registry is an explicit value owned by the application (usually through a
// mapper.Mapper); there is no package-level state.
package registry
