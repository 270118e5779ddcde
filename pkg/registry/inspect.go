package registry

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/hackterm/pkg/domain"
)

// Attribute keys every inspected value carries.
const (
	AttrType  = "type"
	AttrValue = "value"
)

// Inspect lists the displayable attributes of value, filtered by visibility.
// Structs and maps expose one attribute per field, sorted by key; anything
// else exposes its formatted value.
func Inspect(value any, visibility domain.Visibility) []domain.Attribute {
	var attrs []domain.Attribute
	add := func(key string, v any) {
		if visibility.Shows(key) {
			attrs = append(attrs, domain.Attribute{Key: key, Value: v})
		}
	}

	add(AttrType, fmt.Sprintf("%T", value))

	fields, ok := decodeFields(value)
	if !ok {
		add(AttrValue, fmt.Sprintf("%v", value))
		return attrs
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		add(k, fields[k])
	}
	return attrs
}

func decodeFields(value any) (map[string]any, bool) {
	if value == nil {
		return nil, false
	}
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct && v.Kind() != reflect.Map {
		return nil, false
	}

	fields := map[string]any{}
	if err := mapstructure.Decode(v.Interface(), &fields); err != nil {
		return nil, false
	}
	return fields, true
}
