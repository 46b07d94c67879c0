// Package diagnostic collects the findings of a profile check: unknown types,
// unknown or misspelled properties, conflicting rules and type mismatches.
//
// Findings carry a stable code and optional "did you mean" suggestions so the
// command line can print them and tests can assert on them.
package diagnostic
