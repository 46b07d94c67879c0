// Package analyze loads Go packages from source and lists the properties of
// their struct types without compiling or running them.
//
// It uses golang.org/x/tools/go/packages and go/types. The resulting
// TypeGraph implements profile.Schema, so mapping profiles can be checked
// against a code base offline (propmap check).
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: a named type and its visible fields
//   - FieldInfo: field name, qualified type, tag and embedding depth
package analyze
