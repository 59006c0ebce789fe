package value

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// FromNative converts a plain Go value, as produced by encoding/json or a
// socket.io acknowledgement, into a Value. Whole json.Numbers become Int,
// everything else numeric becomes Float unless it has an integer Go type.
func FromNative(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case []byte:
		return Bytes(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Null(), fmt.Errorf("value: invalid number %q: %w", t, err)
		}
		return Float(f), nil
	case []any:
		arr := make([]Value, len(t))
		for i, e := range t {
			v, err := FromNative(e)
			if err != nil {
				return Null(), fmt.Errorf("index %d: %w", i, err)
			}
			arr[i] = v
		}
		return Array(arr...), nil
	case map[string]any:
		m := make(Map, len(t))
		for k, e := range t {
			v, err := FromNative(e)
			if err != nil {
				return Null(), fmt.Errorf("key %q: %w", k, err)
			}
			m[k] = v
		}
		return Object(m), nil
	}
	return Null(), fmt.Errorf("value: unsupported native type %s", reflect.TypeOf(x))
}

// Native converts v into plain Go values: nil, bool, int64, float64, string,
// []byte, []any and map[string]any.
func (v Value) Native() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindBytes:
		return v.raw
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Native()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for k, e := range v.obj {
			out[k] = e.Native()
		}
		return out
	}
	return nil
}
