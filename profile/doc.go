// Package profile reads and writes mapping configurations as YAML.
//
// A profile declares, per type pair, which target properties are ignored,
// redirected or pinned to a constant:
//
//	version: "1"
//	mappings:
//	  - source: model.User
//	    target: view.UserDetails
//	    121:
//	      FirstName: FullName
//	    fields:
//	      - target: Status
//	        const: active
//	    ignore:
//	      - Password
//
// Type names resolve through a Types registry at runtime, or through a
// statically loaded package graph for offline checks. Validate reports
// problems as diagnostics; Apply installs a valid profile into a
// mapper.Mapper and Export does the reverse.
package profile
