package block

import (
	"github.com/specialistvlad/circuitgo/internal/value"
)

// ExecutionContext is what a block sees when it runs: the values delivered
// by upstream connections and the node's static configuration. Inputs whose
// producer did not emit the port are simply absent.
type ExecutionContext struct {
	Inputs value.Map
	Config value.Map
}

// NewContext returns a context over the given maps. Nil maps are allowed.
func NewContext(inputs, config value.Map) *ExecutionContext {
	return &ExecutionContext{Inputs: inputs, Config: config}
}

// Input looks up an input port. Absence is not an error here.
func (c *ExecutionContext) Input(name string) (value.Value, bool) {
	v, ok := c.Inputs[name]
	return v, ok
}

// ConfigValue looks up a configuration key.
func (c *ExecutionContext) ConfigValue(name string) (value.Value, bool) {
	v, ok := c.Config[name]
	return v, ok
}

// Require returns the input or a missing-input error.
func (c *ExecutionContext) Require(name string) (value.Value, error) {
	v, ok := c.Input(name)
	if !ok {
		return value.Null(), MissingInput(name)
	}
	return v, nil
}

// Float returns a numeric input, widening Int.
func (c *ExecutionContext) Float(name string) (float64, error) {
	v, err := c.Require(name)
	if err != nil {
		return 0, err
	}
	f, ok := v.AsFloat()
	if !ok {
		return 0, WrongType(name, "number", v)
	}
	return f, nil
}

// Bool returns a boolean input.
func (c *ExecutionContext) Bool(name string) (bool, error) {
	v, err := c.Require(name)
	if err != nil {
		return false, err
	}
	b, ok := v.AsBool()
	if !ok {
		return false, WrongType(name, "boolean", v)
	}
	return b, nil
}

// Text returns a string input.
func (c *ExecutionContext) Text(name string) (string, error) {
	v, err := c.Require(name)
	if err != nil {
		return "", err
	}
	s, ok := v.AsString()
	if !ok {
		return "", WrongType(name, "string", v)
	}
	return s, nil
}

// Array returns an array input.
func (c *ExecutionContext) Array(name string) ([]value.Value, error) {
	v, err := c.Require(name)
	if err != nil {
		return nil, err
	}
	arr, ok := v.AsArray()
	if !ok {
		return nil, WrongType(name, "array", v)
	}
	return arr, nil
}

// ConfigFloat returns a numeric config entry or def when the key is absent.
// A present entry of the wrong type is an error.
func (c *ExecutionContext) ConfigFloat(name string, def float64) (float64, error) {
	v, ok := c.ConfigValue(name)
	if !ok {
		return def, nil
	}
	f, ok := v.AsFloat()
	if !ok {
		return 0, WrongConfigType(name, "number", v)
	}
	return f, nil
}

// ConfigString returns a string config entry or def when the key is absent.
func (c *ExecutionContext) ConfigString(name, def string) (string, error) {
	v, ok := c.ConfigValue(name)
	if !ok {
		return def, nil
	}
	s, ok := v.AsString()
	if !ok {
		return "", WrongConfigType(name, "string", v)
	}
	return s, nil
}

// ConfigBool returns a boolean config entry or def when the key is absent.
func (c *ExecutionContext) ConfigBool(name string, def bool) (bool, error) {
	v, ok := c.ConfigValue(name)
	if !ok {
		return def, nil
	}
	b, ok := v.AsBool()
	if !ok {
		return false, WrongConfigType(name, "boolean", v)
	}
	return b, nil
}
