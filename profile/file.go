package profile

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the only profile version understood by this package.
const CurrentVersion = "1"

// File is the root of a YAML mapping profile.
type File struct {
	// Version of the profile format. Defaults to CurrentVersion.
	Version string `yaml:"version,omitempty"`

	// Mappings lists one entry per (source, target) type pair.
	Mappings []Mapping `yaml:"mappings"`
}

// Mapping declares the rules of one type pair.
type Mapping struct {
	// Source type name ("model.User", "example.com/app/model.User" or "User").
	Source string `yaml:"source"`

	// Target type name, same forms as Source.
	Target string `yaml:"target"`

	// OneToOne is shorthand for redirects: keys are source properties, values
	// are target properties.
	// Example: { "FirstName": "FullName" }
	OneToOne map[string]string `yaml:"121,omitempty"`

	// Fields are explicit rules, each a redirect or a constant.
	Fields []Field `yaml:"fields,omitempty"`

	// Ignore lists target properties that are never written.
	Ignore []string `yaml:"ignore,omitempty"`
}

// Field is one explicit rule for a target property. Exactly one of Source
// and Const is set.
type Field struct {
	// Target is the destination property.
	Target string `yaml:"target"`

	// Source redirects Target to another source property.
	Source string `yaml:"source,omitempty"`

	// Const pins Target to a value. It stays an undecoded node until the
	// target property type is known; `const: null` writes the zero value.
	Const yaml.Node `yaml:"const,omitempty"`
}

// HasConst reports whether the rule carries a constant (null included).
func (f Field) HasConst() bool {
	return f.Const.Kind != 0
}

// IsNullConst reports whether the rule is `const: null`.
func (f Field) IsNullConst() bool {
	return f.Const.Kind == yaml.ScalarNode && f.Const.ShortTag() == "!!null"
}

// Label returns "Source->Target" for messages.
func (m Mapping) Label() string {
	return m.Source + "->" + m.Target
}

// LoadFile loads and parses a YAML profile from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}

	if f.Version == "" {
		f.Version = CurrentVersion
	}

	return &f, nil
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile %s: %w", path, err)
	}

	return nil
}

// Normalize rewrites every mapping in canonical form: 121 shorthand becomes
// leading Fields entries sorted by source property, and Ignore is sorted.
func Normalize(f *File) {
	for i := range f.Mappings {
		m := &f.Mappings[i]

		if len(m.OneToOne) > 0 {
			sources := make([]string, 0, len(m.OneToOne))
			for src := range m.OneToOne {
				sources = append(sources, src)
			}

			sort.Strings(sources)

			expanded := make([]Field, 0, len(sources)+len(m.Fields))
			for _, src := range sources {
				expanded = append(expanded, Field{Target: m.OneToOne[src], Source: src})
			}

			m.Fields = append(expanded, m.Fields...)
			m.OneToOne = nil
		}

		sort.Strings(m.Ignore)
	}
}
