package value

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
	KindBytes
)

var kindNames = [...]string{
	KindNull:   "Null",
	KindBool:   "Bool",
	KindInt:    "Int",
	KindFloat:  "Float",
	KindString: "String",
	KindArray:  "Array",
	KindObject: "Object",
	KindBytes:  "Bytes",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return KindNull, false
}

// Value is a datum flowing through a graph or stored as node configuration.
// The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	obj  Map
	raw  []byte
}

// Map is a string-keyed collection of values: node configuration, block
// inputs and block outputs all use it.
type Map map[string]Value

func Null() Value            { return Value{} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func Int(i int64) Value      { return Value{kind: KindInt, i: i} }
func Float(f float64) Value  { return Value{kind: KindFloat, f: f} }
func String(s string) Value  { return Value{kind: KindString, s: s} }
func Bytes(b []byte) Value   { return Value{kind: KindBytes, raw: b} }
func Array(v ...Value) Value { return Value{kind: KindArray, arr: v} }
func Object(m Map) Value     { return Value{kind: KindObject, obj: m} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsInt only accepts Int; floats are never narrowed.
func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == KindInt
}

// AsFloat accepts Float and widens Int.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

func (v Value) AsArray() ([]Value, bool) {
	return v.arr, v.kind == KindArray
}

func (v Value) AsObject() (Map, bool) {
	return v.obj, v.kind == KindObject
}

func (v Value) AsBytes() ([]byte, bool) {
	return v.raw, v.kind == KindBytes
}

// Equal reports structural equality. Int(5) and Float(5) are different
// values.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindBytes:
		return bytes.Equal(v.raw, o.raw)
	case KindArray:
		return slices.EqualFunc(v.arr, o.arr, Value.Equal)
	case KindObject:
		return v.obj.Equal(o.obj)
	}
	return false
}

// Clone returns a deep copy.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		if v.arr == nil {
			return v
		}
		arr := make([]Value, len(v.arr))
		for i, e := range v.arr {
			arr[i] = e.Clone()
		}
		v.arr = arr
	case KindObject:
		v.obj = v.obj.Clone()
	case KindBytes:
		v.raw = bytes.Clone(v.raw)
	}
	return v
}

// String renders v compactly for logs and terminal output.
func (v Value) String() string {
	var sb strings.Builder
	v.write(&sb)
	return sb.String()
}

func (v Value) write(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		s := strconv.FormatFloat(v.f, 'g', -1, 64)
		sb.WriteString(s)
		if !strings.ContainsAny(s, ".eEnN") {
			sb.WriteString(".0")
		}
	case KindString:
		sb.WriteString(strconv.Quote(v.s))
	case KindBytes:
		fmt.Fprintf(sb, "bytes[%d]", len(v.raw))
	case KindArray:
		sb.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.write(sb)
		}
		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')
		for i, k := range v.obj.Keys() {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteString(": ")
			v.obj[k].write(sb)
		}
		sb.WriteByte('}')
	}
}

// Clone deep-copies the map. A nil map clones to nil.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v.Clone()
	}
	return out
}

// Equal compares two maps structurally. Nil and empty maps are equal.
func (m Map) Equal(o Map) bool {
	return maps.EqualFunc(m, o, Value.Equal)
}

// Keys returns the keys in lexicographic order.
func (m Map) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}
