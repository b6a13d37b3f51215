// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package literal

import (
	"math"
	"strconv"
	"strings"
)

// Quote renders s as a single-quoted PHP string literal.
func (r *Renderer) Quote(s string) string {
	return quote(s)
}

// quote follows var_export: backslash and single quote are escaped, NUL bytes
// are spliced in as a double-quoted "\0" because single quotes cannot carry them.
func quote(s string) string {
	parts := strings.Split(s, "\x00")
	for i, p := range parts {
		p = strings.ReplaceAll(p, `\`, `\\`)
		parts[i] = "'" + strings.ReplaceAll(p, `'`, `\'`) + "'"
	}
	return strings.Join(parts, ` . "\0" . `)
}

// formatFloat renders f so PHP reads it back as a float (1.0, not 1).
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	case math.IsNaN(f):
		return "NAN"
	}

	s := strconv.FormatFloat(f, 'g', -1, bitSize)
	mantissa, exp, hasExp := strings.Cut(s, "e")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	if !hasExp {
		return mantissa
	}

	sign := "+"
	if strings.HasPrefix(exp, "-") {
		sign = "-"
	}
	digits := strings.TrimLeft(strings.TrimLeft(exp, "+-"), "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "E" + sign + digits
}
