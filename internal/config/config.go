package config

import (
	"strings"
)

// GameConfig is the nested tunables mapping for the match engine.
// Every accessor takes a default: a missing or mistyped key never fails,
// it falls back. That contract is what lets the engine run hot-path reads
// without validation.
type GameConfig map[string]any

// Get walks a dotted path ("match_engine.general.quarter_length") and
// returns the raw value, or def when any segment is missing.
func (c GameConfig) Get(path string, def any) any {
	if c == nil || path == "" {
		return def
	}
	var cur any = map[string]any(c)
	for _, key := range strings.Split(path, ".") {
		m, ok := toMap(cur)
		if !ok {
			return def
		}
		cur, ok = m[key]
		if !ok {
			// viper lowercases every map key it loads
			cur, ok = m[strings.ToLower(key)]
			if !ok {
				return def
			}
		}
	}
	if cur == nil {
		return def
	}
	return cur
}

// Sub returns the nested mapping at path, or an empty one.
func (c GameConfig) Sub(path string) GameConfig {
	if m, ok := toMap(c.Get(path, nil)); ok {
		return GameConfig(m)
	}
	return GameConfig{}
}

// Float returns the float value at path, accepting any numeric YAML type.
func (c GameConfig) Float(path string, def float64) float64 {
	if f, ok := toFloat(c.Get(path, nil)); ok {
		return f
	}
	return def
}

// Int returns the integer value at path.
func (c GameConfig) Int(path string, def int) int {
	if f, ok := toFloat(c.Get(path, nil)); ok {
		return int(f)
	}
	return def
}

// String returns the string value at path.
func (c GameConfig) String(path string, def string) string {
	if s, ok := c.Get(path, nil).(string); ok {
		return s
	}
	return def
}

// Strings returns the string list at path. A scalar string is returned as a
// one-element list, matching how formula keys may be either a literal list
// or a pool reference.
func (c GameConfig) Strings(path string, def []string) []string {
	switch v := c.Get(path, nil).(type) {
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
		if len(out) > 0 {
			return out
		}
	}
	return def
}

// Pools returns the attribute pools under path as name -> attribute list.
func (c GameConfig) Pools(path string) map[string][]string {
	sub := c.Sub(path)
	pools := make(map[string][]string, len(sub))
	for name := range sub {
		pools[name] = sub.Strings(name, nil)
	}
	return pools
}

func toMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case GameConfig:
		return map[string]any(m), true
	case map[any]any:
		// yaml.v2-style maps
		out := make(map[string]any, len(m))
		for k, val := range m {
			if ks, ok := k.(string); ok {
				out[ks] = val
			}
		}
		return out, true
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
