// Package match ranks property names and types against a target so that
// configuration errors can say "did you mean ...".
//
// Key functions:
//   - Normalize, Tokenize: fold identifiers for fuzzy comparison
//   - Distance, Similarity: Levenshtein edit distance over normalized names
//   - Compatibility: how a source reflect.Type fits a destination type
//   - Rank, Suggest: order candidate properties best-first
package match
