// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package literal renders configuration values as PHP source literals.
//
// Output mirrors what PHP's own config writers produce: four-space indentation,
// one "key => value," line per entry and var_export compatible scalars, so a
// file rendered here evaluates back to the same value when included.
package literal

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ManuGH/cfgsplit/internal/value"
)

// Indent is the indentation unit of rendered literals.
const Indent = "    "

// DirToken is PHP's "directory of the current file" magic constant.
const DirToken = "__DIR__"

// ErrUnsupportedType is returned for values outside the configuration model.
var ErrUnsupportedType = errors.New("unsupported configuration value type")

// Renderer renders configuration values with a fixed array syntax.
type Renderer struct {
	style Style
}

// NewRenderer returns a renderer for the given array syntax.
func NewRenderer(style Style) *Renderer {
	return &Renderer{style: style}
}

// Style returns the array syntax in use.
func (r *Renderer) Style() Style {
	return r.style
}

// ArraySyntax returns the opening and closing array tokens.
func (r *Renderer) ArraySyntax() (open, close string) {
	return r.style.Delimiters()
}

// Render renders a single value as a PHP expression.
func (r *Renderer) Render(v any) (string, error) {
	var b strings.Builder
	if err := r.writeValue(&b, v, 0, ""); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RenderEntries renders one "key => value," line per entry of m, indented to depth.
// String values that point into baseDir are emitted relative to __DIR__; an
// empty baseDir disables that rewrite.
func (r *Renderer) RenderEntries(m *value.Map, depth int, baseDir string) (string, error) {
	var b strings.Builder
	for _, e := range m.Entries() {
		if err := r.writeEntry(&b, quote(e.Key), e.Value, depth, baseDir); err != nil {
			return "", fmt.Errorf("key %q: %w", e.Key, err)
		}
	}
	return b.String(), nil
}

// Document renders a complete PHP file returning m.
func (r *Renderer) Document(m *value.Map, baseDir string) (string, error) {
	body, err := r.RenderEntries(m, 1, baseDir)
	if err != nil {
		return "", err
	}
	open, close := r.ArraySyntax()
	return Preamble + "return " + open + "\n" + body + close + ";\n", nil
}

// Preamble opens every rendered PHP file.
const Preamble = "<?php\n"

func (r *Renderer) writeEntry(b *strings.Builder, key string, v any, depth int, baseDir string) error {
	b.WriteString(strings.Repeat(Indent, depth))
	b.WriteString(key)
	b.WriteString(" => ")
	if err := r.writeValue(b, v, depth, baseDir); err != nil {
		return err
	}
	b.WriteString(",\n")
	return nil
}

func (r *Renderer) writeValue(b *strings.Builder, v any, depth int, baseDir string) error {
	open, close := r.ArraySyntax()

	switch t := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		b.WriteString(strconv.FormatBool(t))
	case string:
		b.WriteString(r.stringExpr(t, baseDir))
	case int:
		b.WriteString(strconv.FormatInt(int64(t), 10))
	case int8:
		b.WriteString(strconv.FormatInt(int64(t), 10))
	case int16:
		b.WriteString(strconv.FormatInt(int64(t), 10))
	case int32:
		b.WriteString(strconv.FormatInt(int64(t), 10))
	case int64:
		b.WriteString(strconv.FormatInt(t, 10))
	case uint:
		b.WriteString(strconv.FormatUint(uint64(t), 10))
	case uint8:
		b.WriteString(strconv.FormatUint(uint64(t), 10))
	case uint16:
		b.WriteString(strconv.FormatUint(uint64(t), 10))
	case uint32:
		b.WriteString(strconv.FormatUint(uint64(t), 10))
	case uint64:
		b.WriteString(strconv.FormatUint(t, 10))
	case float32:
		b.WriteString(formatFloat(float64(t), 32))
	case float64:
		b.WriteString(formatFloat(t, 64))
	case *value.Map:
		if t == nil {
			b.WriteString("null")
			return nil
		}
		if t.Len() == 0 {
			b.WriteString(open + close)
			return nil
		}
		b.WriteString(open + "\n")
		for _, e := range t.Entries() {
			if err := r.writeEntry(b, quote(e.Key), e.Value, depth+1, baseDir); err != nil {
				return fmt.Errorf("key %q: %w", e.Key, err)
			}
		}
		b.WriteString(strings.Repeat(Indent, depth) + close)
	case map[string]any:
		// Unordered input: render with sorted keys so output stays deterministic.
		m, _ := value.AsMap(t)
		return r.writeValue(b, m, depth, baseDir)
	case []any:
		if len(t) == 0 {
			b.WriteString(open + close)
			return nil
		}
		b.WriteString(open + "\n")
		for i, e := range t {
			if err := r.writeEntry(b, strconv.Itoa(i), e, depth+1, baseDir); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		b.WriteString(strings.Repeat(Indent, depth) + close)
	case []string:
		seq := make([]any, len(t))
		for i, s := range t {
			seq[i] = s
		}
		return r.writeValue(b, seq, depth, baseDir)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
	return nil
}

// stringExpr renders s, rewriting paths under baseDir relative to __DIR__.
func (r *Renderer) stringExpr(s, baseDir string) string {
	rest, ok := RelativeToDir(s, baseDir)
	if !ok {
		return quote(s)
	}
	if rest == "" {
		return DirToken
	}
	return DirToken + " . " + quote(rest)
}

// RelativeToDir reports whether path p equals dir or lies below it. The
// returned remainder starts with "/" (or is empty when p == dir). Separators
// are normalized to "/" on both sides before comparison.
func RelativeToDir(p, dir string) (string, bool) {
	if dir == "" || p == "" {
		return "", false
	}
	ps := filepath.ToSlash(p)
	ds := strings.TrimSuffix(filepath.ToSlash(dir), "/")
	if ps == ds || (ds == "" && ps == "/") {
		return "", true
	}
	if strings.HasPrefix(ps, ds+"/") {
		return ps[len(ds):], true
	}
	return "", false
}
