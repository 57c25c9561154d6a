package config

import "strings"

// Term is one pre-resolved attribute reference of a formula: the flat
// attribute name and its sign (+1, or -1 for names written with a leading
// "-"). Formulas are resolved once at engine construction so that hot-path
// reads are a plain loop with no string lookups or recursion.
type Term struct {
	Attr string
	Sign float64
}

// ResolveFormula expands a formula value into flat terms. The value is
// either a literal list of attribute names or a string naming an entry in
// pools; pool entries may themselves reference other pools. Unknown names
// pass through as terms (the calculator treats unknown attributes as 0),
// and reference cycles are cut.
func ResolveFormula(value any, pools map[string][]string) []Term {
	names := asNameList(value)
	if names == nil {
		return nil
	}
	var out []Term
	seen := make(map[string]bool)
	resolveNames(names, 1.0, pools, seen, &out)
	return out
}

// ResolveFormulaKey resolves the formula at the given config path against
// the pools at poolsPath.
func (c GameConfig) ResolveFormulaKey(path, poolsPath string, fallback []string) []Term {
	value := c.Get(path, nil)
	if value == nil {
		value = fallback
	}
	return ResolveFormula(value, c.Pools(poolsPath))
}

func resolveNames(names []string, sign float64, pools map[string][]string, seen map[string]bool, out *[]Term) {
	for _, raw := range names {
		s := sign
		name := raw
		if strings.HasPrefix(name, "-") {
			s = -s
			name = name[1:]
		}
		if name == "" {
			continue
		}
		if sub, ok := pools[name]; ok {
			if seen[name] {
				continue
			}
			seen[name] = true
			resolveNames(sub, s, pools, seen, out)
			continue
		}
		*out = append(*out, Term{Attr: name, Sign: s})
	}
}

func asNameList(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		return v
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
