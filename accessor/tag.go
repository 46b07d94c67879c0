package accessor

import (
	"reflect"
	"strconv"
	"strings"
)

const (
	// TagName is the struct tag inspected for propmap directives.
	TagName = "propmap"

	// TagDelimiter separates directives inside a propmap tag.
	TagDelimiter = ","

	ignoreDirective = "ignore"
)

// Marker holds the parsed propmap directives of a struct field.
type Marker struct {
	// Ignored is true when the field must never be written by a mapping.
	Ignored bool
}

// ParseMarker parses the propmap tag of a field.
//
// Accepted forms:
//   - `propmap:"-"`            ignored
//   - `propmap:"ignore"`       ignored
//   - `propmap:"ignore=true"`  ignored
//   - `propmap:"ignore=false"` not ignored (explicit)
//
// Unknown directives are skipped so tags stay forward compatible.
func ParseMarker(field reflect.StructField) Marker {
	tag, ok := field.Tag.Lookup(TagName)
	if !ok {
		return Marker{}
	}

	return ParseMarkerTag(tag)
}

// ParseMarkerTag parses a raw propmap tag value.
func ParseMarkerTag(tag string) Marker {
	var m Marker

	tag = strings.TrimSpace(tag)
	if tag == "-" {
		m.Ignored = true
		return m
	}

	for directive := range strings.SplitSeq(tag, TagDelimiter) {
		key, value, hasValue := strings.Cut(directive, "=")
		if strings.TrimSpace(key) != ignoreDirective {
			continue
		}

		if !hasValue {
			m.Ignored = true
			continue
		}

		flag, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			continue
		}

		m.Ignored = flag
	}

	return m
}
