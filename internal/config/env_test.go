// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		envSet       bool
		defaultValue string
		want         string
	}{
		{name: "environment variable set", envValue: "from-env", envSet: true, defaultValue: "default", want: "from-env"},
		{name: "environment variable not set", defaultValue: "default", want: "default"},
		{name: "environment variable empty string", envValue: "", envSet: true, defaultValue: "default", want: "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envSet {
				t.Setenv("CFGSPLIT_TEST_STRING", tt.envValue)
			}
			assert.Equal(t, tt.want, ParseString("CFGSPLIT_TEST_STRING", tt.defaultValue))
		})
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		envValue     string
		defaultValue bool
		want         bool
	}{
		{"true", false, true},
		{"YES", false, true},
		{"1", false, true},
		{"false", true, false},
		{"no", true, false},
		{"0", true, false},
		{"maybe", true, true},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.envValue, func(t *testing.T) {
			t.Setenv("CFGSPLIT_TEST_BOOL", tt.envValue)
			assert.Equal(t, tt.want, ParseBool("CFGSPLIT_TEST_BOOL", tt.defaultValue))
		})
	}
}

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{"x"}, ParseList("CFGSPLIT_TEST_LIST_UNSET", []string{"x"}))

	t.Setenv("CFGSPLIT_TEST_LIST", " db, cache ,, view manager ")
	assert.Equal(t, []string{"db", "cache", "view manager"}, ParseList("CFGSPLIT_TEST_LIST", nil))

	t.Setenv("CFGSPLIT_TEST_LIST", "   ")
	assert.Nil(t, ParseList("CFGSPLIT_TEST_LIST", nil))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvSplitKeys, "db,cache")
	t.Setenv(EnvFileTemplate, "*.cfg.php")
	t.Setenv(EnvArraySyntax, "legacy")
	t.Setenv(EnvExclusiveLock, "false")

	s := Defaults()
	ApplyEnv(&s)

	assert.Equal(t, []string{"db", "cache"}, s.SplitKeys)
	assert.Equal(t, "*.cfg.php", s.FileTemplate)
	assert.Equal(t, "module.config.php", s.StubFileName)
	assert.Equal(t, "legacy", s.ArraySyntax)
	assert.False(t, s.Lock())
	require.NoError(t, s.Validate())
}
