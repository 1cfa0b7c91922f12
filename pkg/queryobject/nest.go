package queryobject

import (
	"sort"
	"strings"
)

// Nest turns flat rows keyed by dot paths into nested objects, one per row
// and in the same order. Nil values are dropped first.
//
//	{"a.b": 1, "a.c": nil, "d": 2} -> {"a": {"b": 1}, "d": 2}
func Nest(rows []map[string]any) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, NestRow(row))
	}

	return out
}

// NestRow nests a single row. When a scalar and a dotted key share a prefix
// ("a" and "a.b") the nested object wins.
func NestRow(row map[string]any) map[string]any {
	keys := make([]string, 0, len(row))
	for key, value := range row {
		if value == nil {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	nested := make(map[string]any, len(keys))
	for _, key := range keys {
		setPath(nested, strings.Split(key, "."), row[key])
	}

	return nested
}

func setPath(obj map[string]any, path []string, value any) {
	for _, part := range path[:len(path)-1] {
		child, ok := obj[part].(map[string]any)
		if !ok {
			child = make(map[string]any)
			obj[part] = child
		}
		obj = child
	}

	last := path[len(path)-1]

	incoming, isMap := value.(map[string]any)
	if isMap {
		incoming = NestRow(incoming)
	}

	existing, ok := obj[last].(map[string]any)
	if !ok {
		if isMap {
			obj[last] = incoming
		} else {
			obj[last] = value
		}
		return
	}

	if !isMap {
		return
	}

	for key, v := range incoming {
		if sub, ok := v.(map[string]any); ok {
			setPath(existing, []string{key}, sub)
			continue
		}
		if _, taken := existing[key].(map[string]any); !taken {
			existing[key] = v
		}
	}
}
