package match

import (
	"reflect"
	"sort"
)

const (
	// MinSimilarity is the lowest name similarity worth suggesting.
	MinSimilarity = 0.5
	// DefaultLimit is how many suggestions Suggest returns when limit <= 0.
	DefaultLimit = 3

	nameWeight = 0.6
	typeWeight = 0.4
)

// Field is a named, typed property offered as a candidate.
type Field struct {
	Name string
	Type reflect.Type
}

// Candidate is a ranked candidate for a target name.
type Candidate struct {
	Name       string
	NameScore  float64
	Compat     Compat
	Score      float64
	Exact      bool
	Normalized bool
}

// CandidateList is sorted best-first.
type CandidateList []Candidate

// Rank scores every field against target (and, when targetType is non-nil,
// against the target type). Candidates below MinSimilarity are dropped unless
// their normalized name matches exactly.
func Rank(target string, targetType reflect.Type, fields []Field) CandidateList {
	normTarget := Normalize(target)
	list := make(CandidateList, 0, len(fields))

	for _, f := range fields {
		c := Candidate{
			Name:       f.Name,
			NameScore:  Similarity(target, f.Name),
			Exact:      f.Name == target,
			Normalized: Normalize(f.Name) == normTarget,
		}

		if c.NameScore < MinSimilarity && !c.Normalized {
			continue
		}

		c.Score = c.NameScore
		if targetType != nil {
			c.Compat = Compatibility(f.Type, targetType)
			c.Score = nameWeight*c.NameScore + typeWeight*c.Compat.score()
		}

		list = append(list, c)
	}

	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Exact != b.Exact {
			return a.Exact
		}

		if a.Score != b.Score {
			return a.Score > b.Score
		}

		return a.Name < b.Name
	})

	return list
}

// Top returns at most n candidates.
func (l CandidateList) Top(n int) CandidateList {
	if n <= 0 || n >= len(l) {
		return l
	}

	return l[:n]
}

// Names returns the candidate names in rank order.
func (l CandidateList) Names() []string {
	names := make([]string, len(l))
	for i, c := range l {
		names[i] = c.Name
	}

	return names
}

// Suggest returns up to limit names from candidates that look like name,
// best first. An exact match is never suggested back.
func Suggest(name string, candidates []string, limit int) []string {
	if limit <= 0 {
		limit = DefaultLimit
	}

	fields := make([]Field, 0, len(candidates))
	for _, c := range candidates {
		if c != name {
			fields = append(fields, Field{Name: c})
		}
	}

	return Rank(name, nil, fields).Top(limit).Names()
}
