package entities

import (
	"fmt"
	"sort"

	"gorm.io/datatypes"
)

// MergeMetadata merges incoming into existing key by key: keys present in
// incoming win, keys only in existing survive. When existing is empty the
// result is a copy of incoming. Neither argument is modified and the result
// shares no maps or slices with them.
func MergeMetadata(existing, incoming datatypes.JSONMap) datatypes.JSONMap {
	if len(existing) == 0 {
		return CloneMetadata(incoming)
	}
	merged := CloneMetadata(existing)
	for k, v := range incoming {
		merged[k] = cloneValue(v)
	}
	return merged
}

// CloneMetadata deep-copies m. A nil map stays nil.
func CloneMetadata(m datatypes.JSONMap) datatypes.JSONMap {
	if m == nil {
		return nil
	}
	out := make(datatypes.JSONMap, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[k] = cloneValue(inner)
		}
		return out
	case datatypes.JSONMap:
		return map[string]any(CloneMetadata(t))
	case []any:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = cloneValue(inner)
		}
		return out
	default:
		return v
	}
}

// MetadataTerms flattens m into the text metadata search matches against:
// every key and every scalar value at any depth, in sorted key order. Strings
// are taken as is and other scalars are formatted with fmt; nulls are skipped.
func MetadataTerms(m datatypes.JSONMap) []string {
	var terms []string
	appendTerms(&terms, map[string]any(m))
	return terms
}

func appendTerms(terms *[]string, v any) {
	switch t := v.(type) {
	case nil:
	case datatypes.JSONMap:
		appendTerms(terms, map[string]any(t))
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			*terms = append(*terms, k)
			appendTerms(terms, t[k])
		}
	case []any:
		for _, inner := range t {
			appendTerms(terms, inner)
		}
	case string:
		*terms = append(*terms, t)
	default:
		*terms = append(*terms, fmt.Sprint(t))
	}
}
