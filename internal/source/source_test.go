// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/cfgsplit/internal/value"
)

func mustGet(t *testing.T, m *value.Map, key string) any {
	t.Helper()
	v, ok := m.Get(key)
	require.True(t, ok, "missing key %q", key)
	return v
}

func TestDecodeYAML_PreservesOrder(t *testing.T) {
	src := `
zeta:
  second: 2
  first: 1
alpha: hello
list:
  - 1
  - two
  - {b: true, a: null}
ratio: 0.25
hex: 0x10
`
	m, err := Decode(FormatYAML, []byte(src))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "list", "ratio", "hex"}, m.Keys())
	zeta := mustGet(t, m, "zeta").(*value.Map)
	assert.Equal(t, []string{"second", "first"}, zeta.Keys())
	assert.Equal(t, int64(2), mustGet(t, zeta, "second"))

	list := mustGet(t, m, "list").([]any)
	require.Len(t, list, 3)
	assert.Equal(t, int64(1), list[0])
	assert.Equal(t, "two", list[1])
	assert.Equal(t, []string{"b", "a"}, list[2].(*value.Map).Keys())

	assert.Equal(t, 0.25, mustGet(t, m, "ratio"))
	assert.Equal(t, int64(16), mustGet(t, m, "hex"))
}

func TestDecodeYAML_AliasesAndMerge(t *testing.T) {
	src := `
defaults: &defaults
  host: localhost
  port: 5432
db:
  <<: *defaults
  port: 6543
copy: *defaults
`
	m, err := Decode(FormatYAML, []byte(src))
	require.NoError(t, err)

	db := mustGet(t, m, "db").(*value.Map)
	assert.Equal(t, []string{"host", "port"}, db.Keys())
	assert.Equal(t, int64(6543), mustGet(t, db, "port"))
	assert.Equal(t, "localhost", mustGet(t, mustGet(t, m, "copy").(*value.Map), "host"))
}

func TestDecodeYAML_Errors(t *testing.T) {
	_, err := Decode(FormatYAML, []byte("- a\n- b\n"))
	assert.ErrorIs(t, err, ErrNotMapping)

	_, err = Decode(FormatYAML, []byte("a: 1\n---\nb: 2\n"))
	assert.Error(t, err)

	m, err := Decode(FormatYAML, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestDecodeJSON(t *testing.T) {
	m, err := Decode(FormatJSON, []byte(`{"b": {"y": [1, 2.5]}, "a": "x"}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	b := mustGet(t, m, "b").(*value.Map)
	assert.Equal(t, []any{int64(1), 2.5}, mustGet(t, b, "y"))
}

func TestDecodeTOML_PreservesOrder(t *testing.T) {
	src := `
title = "app"
version = 3

[service_manager]
factories = { zeta = "Z", alpha = "A" }
shared = true

[db]
port = 5432
host = "localhost"

[[servers]]
name = "one"

[[servers]]
name = "two"
`
	m, err := Decode(FormatTOML, []byte(src))
	require.NoError(t, err)

	assert.Equal(t, []string{"title", "version", "service_manager", "db", "servers"}, m.Keys())
	db := mustGet(t, m, "db").(*value.Map)
	assert.Equal(t, []string{"port", "host"}, db.Keys())
	assert.Equal(t, int64(5432), mustGet(t, db, "port"))

	sm := mustGet(t, m, "service_manager").(*value.Map)
	factories := mustGet(t, sm, "factories").(*value.Map)
	assert.ElementsMatch(t, []string{"zeta", "alpha"}, factories.Keys())
	assert.Equal(t, true, mustGet(t, sm, "shared"))

	servers := mustGet(t, m, "servers").([]any)
	require.Len(t, servers, 2)
	assert.Equal(t, "two", mustGet(t, servers[1].(*value.Map), "name"))
}

func TestDecodeTOML_DatesAndTimes(t *testing.T) {
	src := `
d = 1979-05-27
t = 07:32:00
dt = 1979-05-27T07:32:00
frac = 07:32:00.5
odt = 1979-05-27T07:32:00Z
`
	m, err := Decode(FormatTOML, []byte(src))
	require.NoError(t, err)

	assert.Equal(t, []string{"d", "t", "dt", "frac", "odt"}, m.Keys())
	assert.Equal(t, "1979-05-27", mustGet(t, m, "d"))
	assert.Equal(t, "07:32:00", mustGet(t, m, "t"))
	assert.Equal(t, "1979-05-27T07:32:00", mustGet(t, m, "dt"))
	assert.Equal(t, "07:32:00.5", mustGet(t, m, "frac"))
	assert.Equal(t, "1979-05-27T07:32:00Z", mustGet(t, m, "odt"))
}

func TestDecodeHCL(t *testing.T) {
	src := `
name = "app"
db {
  port = 5432
  host = "localhost"
}
limits = {
  max   = 10
  ratio = 0.5
}
server "api" {
  listen = ["0.0.0.0", 8080]
}
server "admin" {
  listen = []
}
debug = null
`
	m, err := Decode(FormatHCL, []byte(src))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "db", "limits", "server", "debug"}, m.Keys())

	db := mustGet(t, m, "db").(*value.Map)
	assert.Equal(t, []string{"port", "host"}, db.Keys())
	assert.Equal(t, int64(5432), mustGet(t, db, "port"))

	limits := mustGet(t, m, "limits").(*value.Map)
	assert.Equal(t, []string{"max", "ratio"}, limits.Keys())
	assert.Equal(t, 0.5, mustGet(t, limits, "ratio"))

	server := mustGet(t, m, "server").(*value.Map)
	assert.Equal(t, []string{"api", "admin"}, server.Keys())
	api := mustGet(t, server, "api").(*value.Map)
	if diff := cmp.Diff([]any{"0.0.0.0", int64(8080)}, mustGet(t, api, "listen")); diff != "" {
		t.Errorf("listen mismatch (-want +got):\n%s", diff)
	}

	assert.Nil(t, mustGet(t, m, "debug"))
}

func TestDecodeHCL_Errors(t *testing.T) {
	_, err := Decode(FormatHCL, []byte("a = var.missing\n"))
	assert.Error(t, err)

	_, err = Decode(FormatHCL, []byte("db {\n}\ndb {\n}\n"))
	assert.Error(t, err)

	_, err = Decode(FormatHCL, []byte("a = {\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yml")
	require.NoError(t, os.WriteFile(path, []byte("b: 1\na: 2\n"), 0o600))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, m.Keys())

	_, err = Load(filepath.Join(dir, "app.ini"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
