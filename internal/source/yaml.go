// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ManuGH/cfgsplit/internal/value"
)

// decodeYAML walks the yaml.v3 node tree so mapping order survives. JSON input
// goes through the same path.
func decodeYAML(data []byte) (*value.Map, error) {
	var doc yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return value.NewMap(), nil
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	// Strict: Ensure no multiple documents or trailing content
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("input contains multiple documents or trailing content")
	}

	v, err := fromYAMLNode(&doc)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return value.NewMap(), nil
	}
	m, ok := v.(*value.Map)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, v)
	}
	return m, nil
}

func fromYAMLNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromYAMLNode(n.Content[0])
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)
	case yaml.MappingNode:
		m := value.NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			if k.ShortTag() == "!!merge" {
				if err := mergeYAML(m, v); err != nil {
					return nil, err
				}
				continue
			}
			child, err := fromYAMLNode(v)
			if err != nil {
				return nil, err
			}
			m.Set(k.Value, child)
		}
		return m, nil
	case yaml.SequenceNode:
		seq := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			child, err := fromYAMLNode(c)
			if err != nil {
				return nil, err
			}
			seq = append(seq, child)
		}
		return seq, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", n.Line, n.Kind)
	}
}

// mergeYAML applies a "<<" merge key: entries already present win.
func mergeYAML(dst *value.Map, src *yaml.Node) error {
	if src.Kind == yaml.SequenceNode {
		for _, c := range src.Content {
			if err := mergeYAML(dst, c); err != nil {
				return err
			}
		}
		return nil
	}
	v, err := fromYAMLNode(src)
	if err != nil {
		return err
	}
	m, ok := v.(*value.Map)
	if !ok {
		return fmt.Errorf("line %d: merge value must be a mapping", src.Line)
	}
	for _, e := range m.Entries() {
		if !dst.Has(e.Key) {
			dst.Set(e.Key, e.Value)
		}
	}
	return nil
}

func yamlScalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			// Out of int64 range: keep the float approximation
			var f float64
			if ferr := n.Decode(&f); ferr != nil {
				return nil, err
			}
			return f, nil
		}
		return i, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return f, nil
	default:
		return n.Value, nil
	}
}
