// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML settings file. Unknown fields are rejected and the
// file must hold a single document. Missing fields stay zero; Merge them onto
// Defaults.
func LoadFile(path string) (Settings, error) {
	// #nosec G304 -- settings file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read file: %w", err)
	}

	var s Settings
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // Reject unknown fields

	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return Settings{}, nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return Settings{}, fmt.Errorf("strict settings parse error: %w: %w", ErrUnknownConfigField, err)
		}
		return Settings{}, fmt.Errorf("strict settings parse error: %w", err)
	}

	// Strict: Ensure no multiple documents or trailing content
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("settings file contains multiple documents or trailing content")
	}
	return s, nil
}
