// Package accessor enumerates the properties of struct types and reads and
// writes them through reflection.
//
// A property is an exported struct field, declared directly or promoted from
// an embedded struct. Fields can opt out of every mapping with the propmap
// marker tag:
//
//	type Account struct {
//	    ID       int
//	    Password string `propmap:"ignore"`
//	}
//
// Descriptor tables are built once per type and cached by Introspector.
package accessor
