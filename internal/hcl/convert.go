package hcl

import (
	"fmt"

	"github.com/specialistvlad/circuitgo/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// ToValue converts an evaluated cty value. HCL has a single number type, so
// every number becomes a Float.
func ToValue(v cty.Value) (value.Value, error) {
	if !v.IsKnown() {
		return value.Null(), fmt.Errorf("value of type %s is not known", v.Type().FriendlyName())
	}
	if v.IsNull() {
		return value.Null(), nil
	}
	v, _ = v.Unmark()

	ty := v.Type()
	switch {
	case ty == cty.String:
		return value.String(v.AsString()), nil
	case ty == cty.Bool:
		return value.Bool(v.True()), nil
	case ty == cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return value.Float(f), nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		elems := make([]value.Value, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			e, err := ToValue(ev)
			if err != nil {
				return value.Null(), fmt.Errorf("index %d: %w", len(elems), err)
			}
			elems = append(elems, e)
		}
		return value.Array(elems...), nil
	case ty.IsObjectType() || ty.IsMapType():
		obj := make(value.Map, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			e, err := ToValue(ev)
			if err != nil {
				return value.Null(), fmt.Errorf("key '%s': %w", k.AsString(), err)
			}
			obj[k.AsString()] = e
		}
		return value.Object(obj), nil
	}
	return value.Null(), fmt.Errorf("unsupported type %s", ty.FriendlyName())
}
