// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package literal

import (
	"fmt"
	"strings"
)

// Style selects the PHP array literal syntax.
type Style int

const (
	// StyleBracket renders arrays as [ ... ].
	StyleBracket Style = iota
	// StyleLegacy renders arrays as array( ... ).
	StyleLegacy
)

func (s Style) String() string {
	switch s {
	case StyleBracket:
		return "bracket"
	case StyleLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// Delimiters returns the opening and closing tokens of an array literal.
func (s Style) Delimiters() (open, close string) {
	if s == StyleLegacy {
		return "array(", ")"
	}
	return "[", "]"
}

// ParseStyle maps a settings value to a Style.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "bracket", "short":
		return StyleBracket, nil
	case "legacy", "array", "long":
		return StyleLegacy, nil
	default:
		return StyleBracket, fmt.Errorf("unknown array syntax %q (want bracket or legacy)", name)
	}
}
