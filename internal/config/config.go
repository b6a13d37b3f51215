// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package config holds the settings of the cfgsplit command: defaults, an
// optional strict YAML settings file and CFGSPLIT_* environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ManuGH/cfgsplit/internal/literal"
	"github.com/ManuGH/cfgsplit/internal/splitwriter"
)

// Settings configures a cfgsplit run.
type Settings struct {
	// SplitKeys lists the top-level keys extracted into their own files.
	// Empty selects every key holding a nested mapping.
	SplitKeys     []string `yaml:"splitKeys"`
	FileTemplate  string   `yaml:"fileTemplate"`
	StubFileName  string   `yaml:"stubFileName"`
	ArraySyntax   string   `yaml:"arraySyntax"`
	ExclusiveLock *bool    `yaml:"exclusiveLock"`
	LogLevel      string   `yaml:"logLevel"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	lock := true
	return Settings{
		FileTemplate:  splitwriter.DefaultFileNameTemplate,
		StubFileName:  splitwriter.DefaultStubFileName,
		ArraySyntax:   literal.StyleBracket.String(),
		ExclusiveLock: &lock,
		LogLevel:      "info",
	}
}

// Lock reports whether writes take the exclusive lock (default true).
func (s Settings) Lock() bool {
	return s.ExclusiveLock == nil || *s.ExclusiveLock
}

// Style returns the parsed array syntax.
func (s Settings) Style() (literal.Style, error) {
	return literal.ParseStyle(s.ArraySyntax)
}

// Merge overlays the non-zero fields of o onto s.
func (s *Settings) Merge(o Settings) {
	if len(o.SplitKeys) > 0 {
		s.SplitKeys = append([]string(nil), o.SplitKeys...)
	}
	if o.FileTemplate != "" {
		s.FileTemplate = o.FileTemplate
	}
	if o.StubFileName != "" {
		s.StubFileName = o.StubFileName
	}
	if o.ArraySyntax != "" {
		s.ArraySyntax = o.ArraySyntax
	}
	if o.ExclusiveLock != nil {
		v := *o.ExclusiveLock
		s.ExclusiveLock = &v
	}
	if o.LogLevel != "" {
		s.LogLevel = o.LogLevel
	}
}

// Validate checks the settings for values the writer cannot use.
func (s Settings) Validate() error {
	var problems []string

	if n := strings.Count(s.FileTemplate, splitwriter.Wildcard); n != 1 {
		problems = append(problems, fmt.Sprintf("fileTemplate %q must contain exactly one %q (found %d)", s.FileTemplate, splitwriter.Wildcard, n))
	}
	if strings.ContainsAny(s.FileTemplate, `/\`) {
		problems = append(problems, fmt.Sprintf("fileTemplate %q must be a bare file name", s.FileTemplate))
	}
	if s.StubFileName == "" || s.StubFileName != filepath.Base(s.StubFileName) || strings.ContainsAny(s.StubFileName, `/\`) {
		problems = append(problems, fmt.Sprintf("stubFileName %q must be a bare file name", s.StubFileName))
	}
	if _, err := s.Style(); err != nil {
		problems = append(problems, err.Error())
	}
	for _, k := range s.SplitKeys {
		if k == "" {
			problems = append(problems, "splitKeys must not contain empty keys")
			break
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(problems, "; "))
	}
	return nil
}
