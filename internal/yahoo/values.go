package yahoo

import (
	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/draft"
)

// dig walks nested map keys and returns the value at the end of the path,
// or nil if any step is missing or not a map.
func dig(m map[string]interface{}, keys ...string) interface{} {
	var cur interface{} = m
	for _, key := range keys {
		node, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur = node[key]
	}
	return cur
}

// digMap is dig constrained to a map result.
func digMap(m map[string]interface{}, keys ...string) map[string]interface{} {
	node, _ := dig(m, keys...).(map[string]interface{})
	return node
}

// ensureList normalizes the XML decoder's single-element collapse: a
// repeated element decodes as a list, a lone one as a bare map.
func ensureList(v interface{}) []map[string]interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case []interface{}:
		out := make([]map[string]interface{}, 0, len(val))
		for _, item := range val {
			if m, ok := item.(map[string]interface{}); ok {
				out = append(out, m)
			}
		}
		return out
	case map[string]interface{}:
		return []map[string]interface{}{val}
	default:
		return nil
	}
}

// scalar unwraps a possibly tagged-text value; see draft.Scalar.
func scalar(v interface{}) string {
	return draft.Scalar(v)
}
