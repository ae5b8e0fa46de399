package document

import (
	"reflect"
	"sort"

	"github.com/iancoleman/orderedmap"

	"github.com/thirteen37/typedconf/format"
)

// Merge combines two trees into a new one: keys only in base or only in
// overlay are copied, maps present in both merge recursively, and on any
// other conflict the overlay value wins. The result keeps base's key order,
// with overlay-only keys appended in overlay order, and takes base's tree
// flavor. Neither input is modified.
func Merge(base, overlay any) any {
	if !isTree(base) || !isTree(overlay) {
		if isNil(overlay) {
			return deepCopy(base)
		}
		return deepCopy(overlay)
	}

	result := newLike(base)
	for _, k := range treeKeys(base) {
		bv, _ := childGet(base, k)
		ov, ok := childGet(overlay, k)
		switch {
		case !ok:
			_ = childSet(result, k, deepCopy(bv))
		case isTree(bv) && isTree(ov):
			_ = childSet(result, k, Merge(bv, ov))
		default:
			_ = childSet(result, k, deepCopy(ov))
		}
	}
	for _, k := range treeKeys(overlay) {
		if _, ok := childGet(base, k); !ok {
			ov, _ := childGet(overlay, k)
			_ = childSet(result, k, deepCopy(ov))
		}
	}
	return result
}

// treeKeys lists the keys of either tree flavor: insertion order for
// ordered maps, sorted for plain maps so merges stay deterministic.
func treeKeys(v any) []string {
	if om := format.ToOrderedMapPtr(v); om != nil {
		return om.Keys()
	}
	if m, ok := v.(map[string]any); ok {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys
	}
	return nil
}

// deepCopy creates a deep copy of a tree value. Scalars pass through, maps
// and slices are rebuilt.
func deepCopy(v any) any {
	if om := format.ToOrderedMapPtr(v); om != nil {
		result := orderedmap.New()
		for _, k := range om.Keys() {
			child, _ := om.Get(k)
			result.Set(k, deepCopy(child))
		}
		return result
	}
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, child := range val {
			result[k] = deepCopy(child)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, child := range val {
			result[i] = deepCopy(child)
		}
		return result
	default:
		return val
	}
}

// isNil checks for nil, including typed nil pointers inside interfaces.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
