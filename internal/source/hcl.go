// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package source

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/ManuGH/cfgsplit/internal/value"
)

// decodeHCL reads native HCL syntax. Attributes and blocks keep their source
// order; "name { ... }" blocks become nested mappings and block labels add one
// nesting level each. Expressions are evaluated without variables or functions.
func decodeHCL(data []byte, filename string) (*value.Map, error) {
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("unexpected hcl body type %T", file.Body)
	}
	return fromHCLBody(body)
}

type hclItem struct {
	offset int
	attr   *hclsyntax.Attribute
	block  *hclsyntax.Block
}

func fromHCLBody(body *hclsyntax.Body) (*value.Map, error) {
	items := make([]hclItem, 0, len(body.Attributes)+len(body.Blocks))
	for _, attr := range body.Attributes {
		items = append(items, hclItem{offset: attr.SrcRange.Start.Byte, attr: attr})
	}
	for _, block := range body.Blocks {
		items = append(items, hclItem{offset: block.TypeRange.Start.Byte, block: block})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].offset < items[j].offset })

	m := value.NewMap()
	for _, it := range items {
		if it.attr != nil {
			v, err := fromHCLExpr(it.attr.Expr)
			if err != nil {
				return nil, fmt.Errorf("attribute %q: %w", it.attr.Name, err)
			}
			m.Set(it.attr.Name, v)
			continue
		}
		if err := insertHCLBlock(m, it.block); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func insertHCLBlock(m *value.Map, block *hclsyntax.Block) error {
	content, err := fromHCLBody(block.Body)
	if err != nil {
		return fmt.Errorf("block %q: %w", block.Type, err)
	}

	path := append([]string{block.Type}, block.Labels...)
	cur := m
	for _, seg := range path[:len(path)-1] {
		existing, ok := cur.Get(seg)
		if !ok {
			next := value.NewMap()
			cur.Set(seg, next)
			cur = next
			continue
		}
		next, isMap := existing.(*value.Map)
		if !isMap {
			return fmt.Errorf("%s: block %q conflicts with attribute %q", block.TypeRange, block.Type, seg)
		}
		cur = next
	}

	last := path[len(path)-1]
	if cur.Has(last) {
		return fmt.Errorf("%s: duplicate block %v", block.TypeRange, path)
	}
	cur.Set(last, content)
	return nil
}

func fromHCLExpr(expr hclsyntax.Expression) (any, error) {
	switch e := expr.(type) {
	case *hclsyntax.ObjectConsExpr:
		m := value.NewMap()
		for _, item := range e.Items {
			kv, diags := item.KeyExpr.Value(nil)
			if diags.HasErrors() {
				return nil, diags
			}
			ks, err := convert.Convert(kv, cty.String)
			if err != nil || ks.IsNull() || !ks.IsKnown() {
				return nil, fmt.Errorf("%s: object key must be a string", item.KeyExpr.Range())
			}
			v, err := fromHCLExpr(item.ValueExpr)
			if err != nil {
				return nil, err
			}
			m.Set(ks.AsString(), v)
		}
		return m, nil
	case *hclsyntax.TupleConsExpr:
		seq := make([]any, 0, len(e.Exprs))
		for _, el := range e.Exprs {
			v, err := fromHCLExpr(el)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil
	case *hclsyntax.ParenthesesExpr:
		return fromHCLExpr(e.Expression)
	default:
		v, diags := expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		return fromCty(v)
	}
}

func fromCty(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("value is not known without evaluation context")
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == 0 {
				return i, nil
			}
		}
		f, _ := bf.Float64()
		return f, nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		seq := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			child, err := fromCty(ev)
			if err != nil {
				return nil, err
			}
			seq = append(seq, child)
		}
		return seq, nil
	case ty.IsMapType() || ty.IsObjectType():
		// cty iterates attributes in lexical order
		m := value.NewMap()
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			child, err := fromCty(ev)
			if err != nil {
				return nil, err
			}
			m.Set(k.AsString(), child)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported hcl value type %s", ty.FriendlyName())
	}
}
