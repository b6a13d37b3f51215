// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package source decodes configuration documents into ordered value trees.
// Key order of the document is preserved wherever the format defines one.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ManuGH/cfgsplit/internal/value"
)

// Format identifies an input document syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
)

var (
	// ErrUnknownFormat is returned for unsupported file extensions or format names.
	ErrUnknownFormat = errors.New("unknown input format")
	// ErrNotMapping is returned when the document root is not a mapping.
	ErrNotMapping = errors.New("document root is not a mapping")
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Load reads and decodes the document at path.
func Load(path string) (*value.Map, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	// #nosec G304 -- input paths are provided by the operator via CLI
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	m, err := decode(format, data, path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return m, nil
}

// Decode decodes an in-memory document.
func Decode(format Format, data []byte) (*value.Map, error) {
	return decode(format, data, "input."+string(format))
}

func decode(format Format, data []byte, name string) (*value.Map, error) {
	switch format {
	case FormatYAML, FormatJSON:
		return decodeYAML(data)
	case FormatTOML:
		return decodeTOML(data)
	case FormatHCL:
		return decodeHCL(data, name)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
