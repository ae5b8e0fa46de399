package format

import "github.com/iancoleman/orderedmap"

// ToOrderedMapPtr converts both value and pointer types of OrderedMap to a pointer.
// Returns nil if the value is not an OrderedMap.
func ToOrderedMapPtr(v any) *orderedmap.OrderedMap {
	switch val := v.(type) {
	case *orderedmap.OrderedMap:
		return val
	case orderedmap.OrderedMap:
		return &val
	default:
		return nil
	}
}

// PlainValue recursively converts OrderedMap trees to map[string]any, for
// encoders that only accept plain maps. Key order is lost; callers that care
// use an encoder which takes OrderedMap directly.
func PlainValue(v any) any {
	if om := ToOrderedMapPtr(v); om != nil {
		result := make(map[string]any, len(om.Keys()))
		for _, k := range om.Keys() {
			child, _ := om.Get(k)
			result[k] = PlainValue(child)
		}
		return result
	}
	switch val := v.(type) {
	case []any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = PlainValue(item)
		}
		return result
	default:
		return v
	}
}
