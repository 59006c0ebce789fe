package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrUnknownType is returned when decoding a tagged value whose "type" is
// not one of the Kind names.
var ErrUnknownType = errors.New("unknown value type")

type tagged struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// MarshalJSON encodes v as {"type": <Kind>, "value": <payload>}. Null has no
// payload. Bytes are base64 encoded.
func (v Value) MarshalJSON() ([]byte, error) {
	var payload any
	switch v.kind {
	case KindNull:
		return []byte(`{"type":"Null"}`), nil
	case KindBool:
		payload = v.b
	case KindInt:
		payload = v.i
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return nil, fmt.Errorf("value: cannot encode non-finite float %v", v.f)
		}
		payload = json.Number(strconv.FormatFloat(v.f, 'g', -1, 64))
	case KindString:
		payload = v.s
	case KindBytes:
		if v.raw == nil {
			payload = []byte{}
		} else {
			payload = v.raw
		}
	case KindArray:
		if v.arr == nil {
			payload = []Value{}
		} else {
			payload = v.arr
		}
	case KindObject:
		if v.obj == nil {
			payload = Map{}
		} else {
			payload = v.obj
		}
	default:
		return nil, fmt.Errorf("value: %w: %s", ErrUnknownType, v.kind)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(tagged{Type: v.kind.String(), Value: raw})
}

// UnmarshalJSON decodes the tagged form produced by MarshalJSON. The tag
// decides the variant, so {"type":"Float","value":5} is Float(5).
func (v *Value) UnmarshalJSON(data []byte) error {
	var t tagged
	if err := json.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("value: %w", err)
	}
	kind, ok := ParseKind(t.Type)
	if !ok {
		return fmt.Errorf("value: %w: %q", ErrUnknownType, t.Type)
	}
	if kind == KindNull {
		*v = Null()
		return nil
	}
	if len(t.Value) == 0 || bytes.Equal(bytes.TrimSpace(t.Value), []byte("null")) {
		return fmt.Errorf("value: %s is missing its payload", kind)
	}

	var err error
	switch kind {
	case KindBool:
		var b bool
		err = json.Unmarshal(t.Value, &b)
		*v = Bool(b)
	case KindInt:
		var n json.Number
		if err = decodeNumber(t.Value, &n); err == nil {
			var i int64
			i, err = n.Int64()
			*v = Int(i)
		}
	case KindFloat:
		var n json.Number
		if err = decodeNumber(t.Value, &n); err == nil {
			var f float64
			f, err = n.Float64()
			*v = Float(f)
		}
	case KindString:
		var s string
		err = json.Unmarshal(t.Value, &s)
		*v = String(s)
	case KindBytes:
		var b []byte
		err = json.Unmarshal(t.Value, &b)
		*v = Bytes(b)
	case KindArray:
		var arr []Value
		err = json.Unmarshal(t.Value, &arr)
		if arr == nil {
			arr = []Value{}
		}
		*v = Array(arr...)
	case KindObject:
		var m Map
		err = json.Unmarshal(t.Value, &m)
		if m == nil {
			m = Map{}
		}
		*v = Object(m)
	}
	if err != nil {
		return fmt.Errorf("value: decoding %s payload: %w", kind, err)
	}
	return nil
}

func decodeNumber(raw json.RawMessage, n *json.Number) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(n)
}
