// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package testutil evaluates the PHP subset emitted by cfgsplit so tests can
// assert round trips without a PHP runtime.
//
// Supported: "<?php return EXPR;" where EXPR is an array literal (both
// syntaxes), a single- or double-quoted string, int, float, INF, NAN, null,
// true, false, __DIR__, "." concatenation and "include EXPR".
package testutil

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ManuGH/cfgsplit/internal/value"
)

// LoadPHP evaluates a generated PHP config file, following includes. Arrays
// are returned as *value.Map with integer keys stringified; integers are int64
// and floats float64.
func LoadPHP(path string) (any, error) {
	// #nosec G304 -- test helper reading files it wrote
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	toks, err := lex(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p := &parser{toks: toks, dir: filepath.Dir(abs)}
	if err := p.expect(tokOpenTag, ""); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := p.expect(tokIdent, "return"); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	v, err := p.expr()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := p.expect(tokPunct, ";"); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("%s: trailing content %q", path, p.peek().text)
	}
	return v, nil
}

// Normalize maps configuration values and loaded PHP values onto comparable
// builtin types: arrays become map[string]any (sequences keyed by index),
// integers int64 and floats float64.
func Normalize(v any) any {
	switch t := v.(type) {
	case *value.Map:
		out := make(map[string]any, t.Len())
		for _, e := range t.Entries() {
			out[e.Key] = Normalize(e.Value)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Normalize(e)
		}
		return out
	case []any:
		out := make(map[string]any, len(t))
		for i, e := range t {
			out[strconv.Itoa(i)] = Normalize(e)
		}
		return out
	case []string:
		out := make(map[string]any, len(t))
		for i, e := range t {
			out[strconv.Itoa(i)] = e
		}
		return out
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case uint:
		return int64(t)
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case float32:
		return float64(t)
	default:
		return v
	}
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokOpenTag
	tokIdent
	tokString
	tokNumber
	tokPunct
)

type token struct {
	kind tokKind
	text string
}

func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case strings.HasPrefix(src[i:], "<?php"):
			toks = append(toks, token{tokOpenTag, "<?php"})
			i += len("<?php")
		case strings.HasPrefix(src[i:], "=>"):
			toks = append(toks, token{tokPunct, "=>"})
			i += 2
		case strings.ContainsRune("[](),.;", rune(c)):
			toks = append(toks, token{tokPunct, string(c)})
			i++
		case c == '\'':
			s, n, err := lexSingleQuoted(src[i:])
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{tokString, s})
			i += n
		case c == '"':
			end := strings.IndexByte(src[i+1:], '"')
			if end < 0 {
				return nil, fmt.Errorf("unterminated double-quoted string")
			}
			raw := src[i+1 : i+1+end]
			if raw != `\0` {
				return nil, fmt.Errorf("unsupported double-quoted string %q", raw)
			}
			toks = append(toks, token{tokString, "\x00"})
			i += end + 2
		case c == '-' || (c >= '0' && c <= '9'):
			j := i + 1
			for j < len(src) && strings.ContainsRune("0123456789.eE+-", rune(src[j])) {
				if (src[j] == '+' || src[j] == '-') && src[j-1] != 'E' && src[j-1] != 'e' {
					break
				}
				j++
			}
			if c == '-' && j == i+1 {
				toks = append(toks, token{tokPunct, "-"})
				i++
				continue
			}
			toks = append(toks, token{tokNumber, src[i:j]})
			i = j
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			j := i + 1
			for j < len(src) && (src[j] == '_' || (src[j] >= 'a' && src[j] <= 'z') || (src[j] >= 'A' && src[j] <= 'Z') || (src[j] >= '0' && src[j] <= '9')) {
				j++
			}
			toks = append(toks, token{tokIdent, src[i:j]})
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", c, i)
		}
	}
	return append(toks, token{kind: tokEOF}), nil
}

func lexSingleQuoted(src string) (string, int, error) {
	var b strings.Builder
	for i := 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			if i+1 < len(src) && (src[i+1] == '\\' || src[i+1] == '\'') {
				b.WriteByte(src[i+1])
				i++
				continue
			}
			b.WriteByte('\\')
		case '\'':
			return b.String(), i + 1, nil
		default:
			b.WriteByte(src[i])
		}
	}
	return "", 0, fmt.Errorf("unterminated single-quoted string")
}

type parser struct {
	toks []token
	pos  int
	dir  string
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokKind, text string) error {
	t := p.next()
	if t.kind != kind || (text != "" && t.text != text) {
		return fmt.Errorf("expected %q, got %q", text, t.text)
	}
	return nil
}

func (p *parser) accept(kind tokKind, text string) bool {
	t := p.peek()
	if t.kind == kind && t.text == text {
		p.pos++
		return true
	}
	return false
}

// expr parses "include" or a "."-concatenation of terms.
func (p *parser) expr() (any, error) {
	if p.accept(tokIdent, "include") {
		target, err := p.expr()
		if err != nil {
			return nil, err
		}
		path, ok := target.(string)
		if !ok {
			return nil, fmt.Errorf("include target is %T, want string", target)
		}
		return LoadPHP(path)
	}

	v, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.accept(tokPunct, ".") {
		rhs, err := p.term()
		if err != nil {
			return nil, err
		}
		ls, lok := v.(string)
		rs, rok := rhs.(string)
		if !lok || !rok {
			return nil, fmt.Errorf("concatenation of %T and %T", v, rhs)
		}
		v = ls + rs
	}
	return v, nil
}

func (p *parser) term() (any, error) {
	t := p.next()
	switch t.kind {
	case tokString:
		return t.text, nil
	case tokNumber:
		return parseNumber(t.text)
	case tokPunct:
		switch t.text {
		case "[":
			return p.entries("]")
		case "-":
			if p.accept(tokIdent, "INF") {
				return math.Inf(-1), nil
			}
		}
	case tokIdent:
		switch t.text {
		case "null":
			return nil, nil
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "INF":
			return math.Inf(1), nil
		case "NAN":
			return math.NaN(), nil
		case "__DIR__":
			return p.dir, nil
		case "array":
			if err := p.expect(tokPunct, "("); err != nil {
				return nil, err
			}
			return p.entries(")")
		}
	}
	return nil, fmt.Errorf("unexpected token %q", t.text)
}

func (p *parser) entries(closing string) (any, error) {
	m := value.NewMap()
	for !p.accept(tokPunct, closing) {
		kt := p.next()
		var key string
		switch kt.kind {
		case tokString, tokNumber:
			key = kt.text
		default:
			return nil, fmt.Errorf("unexpected array key %q", kt.text)
		}
		if err := p.expect(tokPunct, "=>"); err != nil {
			return nil, err
		}
		v, err := p.expr()
		if err != nil {
			return nil, err
		}
		m.Set(key, v)
		if !p.accept(tokPunct, ",") {
			if err := p.expect(tokPunct, closing); err != nil {
				return nil, err
			}
			break
		}
	}
	return m, nil
}

func parseNumber(s string) (any, error) {
	if !strings.ContainsAny(s, ".eE") {
		return strconv.ParseInt(s, 10, 64)
	}
	return strconv.ParseFloat(s, 64)
}
