package profile

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"propmap/internal/diagnostic"
	"propmap/maperr"
	"propmap/mapper"
)

type User struct {
	ID        int
	FirstName string
	LastName  string
	Password  string
}

type UserDetails struct {
	ID       int
	FullName string
	Nickname string
	Status   string
	Score    float64
	Tags     []string
	Note     string
	Secret   string `propmap:"ignore"`
	Password string
}

const sampleProfile = `
version: "1"
mappings:
  - source: profile.User
    target: UserDetails
    121:
      FirstName: FullName
    fields:
      - target: Status
        const: active
      - target: Nickname
        source: LastName
      - target: Score
        const: 99.5
      - target: Tags
        const: [a, b]
      - target: Note
        const: null
    ignore:
      - Password
`

func newTypes(t *testing.T) *Types {
	t.Helper()

	ts := NewTypes(nil)
	require.NoError(t, Register[User](ts))
	require.NoError(t, Register[*UserDetails](ts))

	return ts
}

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sampleProfile))
	require.NoError(t, err)

	require.Len(t, f.Mappings, 1)
	m := f.Mappings[0]

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, map[string]string{"FirstName": "FullName"}, m.OneToOne)
	assert.Equal(t, []string{"Password"}, m.Ignore)
	require.Len(t, m.Fields, 5)

	assert.True(t, m.Fields[0].HasConst())
	assert.Equal(t, "active", m.Fields[0].Const.Value)
	assert.False(t, m.Fields[1].HasConst())
	assert.Equal(t, "LastName", m.Fields[1].Source)
	assert.True(t, m.Fields[4].HasConst(), "const: null is still a const")
	assert.True(t, m.Fields[4].IsNullConst())
	assert.False(t, m.Fields[0].IsNullConst())
}

func TestParse_Defaults(t *testing.T) {
	f, err := Parse([]byte("mappings: []\n"))
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, f.Version)

	_, err = Parse([]byte("mappings: {"))
	require.Error(t, err)
}

func TestLoadAndWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")

	require.NoError(t, os.WriteFile(path, []byte(sampleProfile), 0o600))

	f, err := LoadFile(path)
	require.NoError(t, err)

	Normalize(f)

	out := filepath.Join(dir, "out.yaml")
	require.NoError(t, WriteFile(f, out))

	again, err := LoadFile(out)
	require.NoError(t, err)
	assert.Empty(t, again.Mappings[0].OneToOne)
	require.Len(t, again.Mappings[0].Fields, 6)
	assert.Equal(t, Field{Target: "FullName", Source: "FirstName"}, again.Mappings[0].Fields[0])
	assert.True(t, again.Mappings[0].Fields[5].IsNullConst())

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestTypes_Resolve(t *testing.T) {
	ts := newTypes(t)

	tests := []struct {
		name string
		want reflect.Type
	}{
		{"profile.User", reflect.TypeFor[User]()},
		{"propmap/profile.User", reflect.TypeFor[User]()},
		{"User", reflect.TypeFor[User]()},
		{"UserDetails", reflect.TypeFor[UserDetails]()},
		{"other.User", nil},
		{"Missing", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ts.Resolve(tt.name)
			assert.Equal(t, tt.want != nil, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, []string{"profile.User", "profile.UserDetails"}, ts.TypeNames())
	require.ErrorIs(t, ts.Add(reflect.TypeFor[int]()), maperr.ErrInvalidArgument)
	require.ErrorIs(t, ts.Add(reflect.TypeFor[struct{ A int }]()), maperr.ErrInvalidArgument)
}

func TestTypes_Properties(t *testing.T) {
	ts := newTypes(t)

	props, ok := ts.Properties("UserDetails")
	require.True(t, ok)
	require.Len(t, props, 9)
	assert.Equal(t, Property{Name: "Tags", Type: "[]string"}, props[5])
	assert.Equal(t, Property{Name: "Secret", Type: "string", Ignored: true}, props[7])

	_, ok = ts.Properties("Nope")
	assert.False(t, ok)
}

func TestApply(t *testing.T) {
	f, err := Parse([]byte(sampleProfile))
	require.NoError(t, err)

	m := mapper.New()
	require.NoError(t, Apply(f, m, newTypes(t)))

	dst := UserDetails{Password: "keep", Note: "stale"}
	require.NoError(t, m.Map(User{ID: 1, FirstName: "John", LastName: "Smith", Password: "x"}, &dst))

	assert.Equal(t, UserDetails{
		ID:       1,
		FullName: "John",
		Nickname: "Smith",
		Status:   "active",
		Score:    99.5,
		Tags:     []string{"a", "b"},
		Password: "keep",
	}, dst)
}

func TestApply_ReplacesExistingConfiguration(t *testing.T) {
	m := mapper.New()
	require.NoError(t, mapper.Create[User, UserDetails](m).Ignore("ID").Err())

	f, err := Parse([]byte(sampleProfile))
	require.NoError(t, err)
	require.NoError(t, Apply(f, m, newTypes(t)))

	var dst UserDetails
	require.NoError(t, m.Map(User{ID: 5}, &dst))
	assert.Equal(t, 5, dst.ID)
}

func TestApply_Errors(t *testing.T) {
	ts := newTypes(t)

	tests := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "unknown property",
			yaml: "mappings:\n  - source: User\n    target: UserDetails\n    ignore: [Pasword]\n",
			want: maperr.ErrInvalidArgument,
		},
		{
			name: "const does not decode",
			yaml: "mappings:\n  - source: User\n    target: UserDetails\n    fields:\n      - target: Score\n        const: high\n",
			want: maperr.ErrInvalidArgument,
		},
		{
			name: "redirect not assignable",
			yaml: "mappings:\n  - source: User\n    target: UserDetails\n    121:\n      ID: FullName\n",
			want: maperr.ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)

			err = Apply(f, mapper.New(), ts)
			require.ErrorIs(t, err, tt.want)
		})
	}

	require.ErrorIs(t, Apply(&File{}, nil, ts), maperr.ErrNullArgument)
}

func TestApply_FailureLeavesMapperUnchanged(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "redirect not assignable",
			yaml: "mappings:\n  - source: User\n    target: UserDetails\n    ignore: [Nickname]\n    121: {ID: FullName}\n",
		},
		{
			name: "later mapping has a bad const",
			yaml: `
mappings:
  - source: User
    target: UserDetails
    ignore: [Nickname]
  - source: UserDetails
    target: User
    fields:
      - target: ID
        const: high
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mapper.New()
			h := mapper.Create[User, UserDetails](m).AssignConstant("Status", "kept")
			require.NoError(t, h.Err())

			before, err := h.Configuration()
			require.NoError(t, err)

			f, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)
			require.ErrorIs(t, Apply(f, m, newTypes(t)), maperr.ErrInvalidArgument)

			after, err := h.Configuration()
			require.NoError(t, err)
			assert.Equal(t, before, after)
			assert.Equal(t, 1, m.Registry().Len())

			var dst UserDetails
			require.NoError(t, m.Map(User{LastName: "Smith"}, &dst))
			assert.Equal(t, "kept", dst.Status)
		})
	}
}

func TestExport(t *testing.T) {
	m := mapper.New()
	h := mapper.Create[User, UserDetails](m).
		Ignore("Password").
		Redirect("FirstName", "FullName").
		AssignConstant("Score", 1.5).
		AssignConstant("Note", nil)
	require.NoError(t, h.Err())

	ts := newTypes(t)

	f, err := Export(m, ts)
	require.NoError(t, err)
	require.Len(t, f.Mappings, 1)

	pm := f.Mappings[0]
	assert.Equal(t, "profile.User", pm.Source)
	assert.Equal(t, "profile.UserDetails", pm.Target)
	assert.Equal(t, []string{"Password"}, pm.Ignore)
	require.Len(t, pm.Fields, 3)
	assert.Equal(t, "FirstName", pm.Fields[0].Source)
	assert.Equal(t, "1.5", pm.Fields[1].Const.Value)
	assert.True(t, pm.Fields[2].IsNullConst())

	data, err := Marshal(f)
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)

	other := mapper.New()
	require.NoError(t, Apply(back, other, ts))

	want, err := h.Configuration()
	require.NoError(t, err)

	got, ok := other.Registry().Lookup(want.Pair)
	require.True(t, ok)
	assert.Equal(t, want.Ignored(), got.Ignored())
	assert.Equal(t, want.Overrides(), got.Overrides())
}

// NodeSummary is mapped from yaml.Node, whose package name differs from the
// last element of its import path.
type NodeSummary struct {
	Kind  yaml.Kind
	Tag   string
	Value string
	Line  int
}

func TestExport_PackageNameDiffersFromPath(t *testing.T) {
	ts := NewTypes(nil)
	require.NoError(t, Register[yaml.Node](ts))
	require.NoError(t, Register[NodeSummary](ts))

	got, ok := ts.Resolve("yaml.Node")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[yaml.Node](), got)

	m := mapper.New()
	require.NoError(t, mapper.Create[yaml.Node, NodeSummary](m).Ignore("Line").Err())

	f, err := Export(m, ts)
	require.NoError(t, err)
	require.Len(t, f.Mappings, 1)
	assert.Equal(t, "yaml.Node", f.Mappings[0].Source)

	other := mapper.New()
	require.NoError(t, Apply(f, other, ts))

	var dst NodeSummary
	require.NoError(t, other.Map(yaml.Node{Kind: yaml.ScalarNode, Value: "x", Line: 3}, &dst))
	assert.Equal(t, NodeSummary{Kind: yaml.ScalarNode, Value: "x"}, dst)
}

func TestField_ConstNodeKinds(t *testing.T) {
	var f Field
	require.NoError(t, yaml.Unmarshal([]byte("target: X\n"), &f))
	assert.False(t, f.HasConst())

	require.NoError(t, yaml.Unmarshal([]byte("target: X\nconst: ~\n"), &f))
	assert.True(t, f.IsNullConst())
}

func TestValidate(t *testing.T) {
	ts := newTypes(t)

	tests := []struct {
		name  string
		yaml  string
		codes []string
	}{
		{
			name:  "valid",
			yaml:  sampleProfile,
			codes: nil,
		},
		{
			name:  "unknown types",
			yaml:  "mappings:\n  - source: Usr\n    target: view.User\n",
			codes: []string{diagnostic.CodeUnknownType},
		},
		{
			name:  "bad version",
			yaml:  "version: \"2\"\nmappings: []\n",
			codes: []string{diagnostic.CodeUnsupportedVersion},
		},
		{
			name:  "duplicate pair",
			yaml:  "mappings:\n  - source: User\n    target: UserDetails\n  - source: User\n    target: UserDetails\n",
			codes: []string{diagnostic.CodeDuplicatePair},
		},
		{
			name:  "ignored and redirected",
			yaml:  "mappings:\n  - source: User\n    target: UserDetails\n    121: {FirstName: FullName}\n    ignore: [FullName]\n",
			codes: []string{diagnostic.CodeConflictingRule},
		},
		{
			name:  "two rules for one target",
			yaml:  "mappings:\n  - source: User\n    target: UserDetails\n    121: {FirstName: FullName}\n    fields:\n      - {target: FullName, const: x}\n",
			codes: []string{diagnostic.CodeConflictingRule},
		},
		{
			name:  "source and const",
			yaml:  "mappings:\n  - source: User\n    target: UserDetails\n    fields:\n      - {target: FullName, source: FirstName, const: x}\n",
			codes: []string{diagnostic.CodeConflictingRule},
		},
		{
			name:  "empty field",
			yaml:  "mappings:\n  - source: User\n    target: UserDetails\n    fields:\n      - {target: FullName}\n",
			codes: []string{diagnostic.CodeEmptyRule},
		},
		{
			name:  "unknown source property",
			yaml:  "mappings:\n  - source: User\n    target: UserDetails\n    121: {FristName: FullName}\n",
			codes: []string{diagnostic.CodeUnknownProperty},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)

			d := Validate(f, ts)
			assert.Equal(t, len(tt.codes) > 0, d.HasErrors(), d.Lines())

			for _, code := range tt.codes {
				assert.True(t, d.HasCode(code), "want %s in %v", code, d.Lines())
			}
		})
	}
}

func TestValidate_WarningsAndSuggestions(t *testing.T) {
	ts := newTypes(t)

	f, err := Parse([]byte(`
mappings:
  - source: User
    target: UserDetails
    121:
      ID: FullName
    fields:
      - target: Secret
        const: s
      - target: Nickname
        source: FristName
`))
	require.NoError(t, err)

	d := Validate(f, ts)

	require.Len(t, d.Errors, 1)
	assert.Equal(t, diagnostic.CodeUnknownProperty, d.Errors[0].Code)
	require.NotEmpty(t, d.Errors[0].Suggestions)
	assert.Equal(t, "FirstName", d.Errors[0].Suggestions[0])

	require.Len(t, d.Warnings, 1)
	assert.Equal(t, diagnostic.CodeTypeMismatch, d.Warnings[0].Code)

	require.Len(t, d.Infos, 1)
	assert.Equal(t, diagnostic.CodeIgnoredByMarker, d.Infos[0].Code)
	assert.Equal(t, "Secret", d.Infos[0].Property)

	assert.True(t, Validate(nil, ts).HasErrors())
	assert.True(t, Validate(&File{}, nil).HasErrors())
}
