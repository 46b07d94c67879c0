package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propmap/profile"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestCheck(t *testing.T) {
	out, _, err := run(t, "check",
		"--profile", "testdata/customers.yaml",
		"--packages", "propmap/store",
		"--packages", "propmap/warehouse",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "2 mapping(s) ok")
}

func TestCheck_ReportsErrors(t *testing.T) {
	out, stderr, err := run(t, "check",
		"--profile", "testdata/broken.yaml",
		"--packages", "propmap/store,propmap/warehouse",
	)
	require.ErrorIs(t, err, errInvalidProfile)
	assert.Contains(t, out, "[unknown-property]")
	assert.Contains(t, out, "did you mean Email")
	assert.Contains(t, stderr, "profile has errors")
}

func TestCheck_HintsMissingPackages(t *testing.T) {
	out, _, err := run(t, "check",
		"--profile", "testdata/customers.yaml",
		"--packages", "propmap/store",
	)
	require.ErrorIs(t, err, errInvalidProfile)
	assert.Contains(t, out, "[unknown-type]")
	assert.Contains(t, out, "hint: types are looked up in propmap/store")
}

func TestCheck_ProfileFromEnvironment(t *testing.T) {
	t.Setenv("PROPMAP_PROFILE", "testdata/customers.yaml")

	out, _, err := run(t, "check", "--packages", "propmap/store,propmap/warehouse")
	require.NoError(t, err)
	assert.Contains(t, out, "testdata/customers.yaml: 2 mapping(s) ok")
}

func TestCheck_RequiresProfile(t *testing.T) {
	_, _, err := run(t, "check")
	require.EqualError(t, err, "--profile is required")

	_, _, err = run(t, "fmt")
	require.EqualError(t, err, "--profile is required")
}

func TestFmt(t *testing.T) {
	out, _, err := run(t, "fmt", "--profile", "testdata/customers.yaml")
	require.NoError(t, err)

	f, err := profile.Parse([]byte(out))
	require.NoError(t, err)
	require.Len(t, f.Mappings, 2)

	customers := f.Mappings[0]
	assert.Empty(t, customers.OneToOne)
	require.Len(t, customers.Fields, 2)
	assert.Equal(t, profile.Field{Target: "Active", Source: "IsActive"}, customers.Fields[0])
	assert.Equal(t, "Source", customers.Fields[1].Target)
}

func TestFmt_Write(t *testing.T) {
	data, err := os.ReadFile("testdata/customers.yaml")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "customers.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	out, _, err := run(t, "fmt", "--profile", path, "--write", "--verbose")
	require.NoError(t, err)
	assert.Empty(t, out)

	f, err := profile.LoadFile(path)
	require.NoError(t, err)
	assert.Empty(t, f.Mappings[1].OneToOne)
	assert.Equal(t, "Stock", f.Mappings[1].Fields[0].Target)
}
