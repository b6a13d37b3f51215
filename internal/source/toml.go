// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package source

import (
	"fmt"
	"sort"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ManuGH/cfgsplit/internal/value"
)

// decodeTOML decodes into plain maps and restores document order from the
// decoder metadata. Tables inside arrays have no recorded order and are
// emitted with sorted keys.
func decodeTOML(data []byte) (*value.Map, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}

	root := value.NewMap()
	for _, key := range md.Keys() {
		insertTOML(root, raw, key)
	}
	fillTOML(root, raw)
	return root, nil
}

// fillTOML adds entries the metadata did not list, in sorted order.
func fillTOML(m *value.Map, raw map[string]any) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		existing, ok := m.Get(k)
		if !ok {
			m.Set(k, fromTOML(raw[k]))
			continue
		}
		sub, isMap := existing.(*value.Map)
		rawSub, isTable := raw[k].(map[string]any)
		if isMap && isTable {
			fillTOML(sub, rawSub)
		}
	}
}

func insertTOML(root *value.Map, raw map[string]any, path toml.Key) {
	cur := root
	var curRaw any = raw
	for i, seg := range path {
		rm, ok := curRaw.(map[string]any)
		if !ok {
			return
		}
		rv, ok := rm[seg]
		if !ok {
			return
		}
		existing, has := cur.Get(seg)

		if i == len(path)-1 {
			if has {
				return
			}
			if _, isTable := rv.(map[string]any); isTable {
				// Children follow as their own keys
				cur.Set(seg, value.NewMap())
			} else {
				cur.Set(seg, fromTOML(rv))
			}
			return
		}

		next, ok := existing.(*value.Map)
		if !has {
			next = value.NewMap()
			cur.Set(seg, next)
		} else if !ok {
			return
		}
		cur = next
		curRaw = rv
	}
}

func fromTOML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := value.NewMap()
		for _, k := range keys {
			m.Set(k, fromTOML(t[k]))
		}
		return m
	case []map[string]any:
		seq := make([]any, len(t))
		for i, e := range t {
			seq[i] = fromTOML(e)
		}
		return seq
	case []any:
		seq := make([]any, len(t))
		for i, e := range t {
			seq[i] = fromTOML(e)
		}
		return seq
	case time.Time:
		// Local dates and times carry fixed zones named after their TOML type
		switch t.Location().String() {
		case "date-local":
			return t.Format("2006-01-02")
		case "time-local":
			return t.Format("15:04:05.999999999")
		case "datetime-local":
			return t.Format("2006-01-02T15:04:05.999999999")
		}
		return t.Format(time.RFC3339Nano)
	default:
		return v
	}
}
