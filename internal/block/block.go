package block

import (
	"github.com/specialistvlad/circuitgo/internal/value"
)

// PortDefinition describes a named input or output slot. DataType and
// Required are advisory; the engine never checks them.
type PortDefinition struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	DataType string `json:"data_type"`
	Required bool   `json:"required"`
}

// Metadata describes a block type. ID is the registry key that nodes refer
// to through their block type.
type Metadata struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Inputs       []PortDefinition  `json:"inputs"`
	Outputs      []PortDefinition  `json:"outputs"`
	ConfigSchema map[string]string `json:"config_schema,omitempty"`
}

// Block is a stateless computational unit. A single registered instance is
// shared by every node that references its type, so implementations must be
// safe for concurrent use.
type Block interface {
	Metadata() Metadata
	// Execute computes the block's outputs, keyed by output port name.
	Execute(ctx *ExecutionContext) (value.Map, error)
}

// Validator is implemented by blocks that can check a node's static
// configuration ahead of execution.
type Validator interface {
	Validate(config value.Map) error
}

// Validate runs b's configuration check, if it has one.
func Validate(b Block, config value.Map) error {
	if v, ok := b.(Validator); ok {
		return v.Validate(config)
	}
	return nil
}

// Port is a shorthand for building PortDefinitions in block metadata.
func Port(id, dataType string, required bool) PortDefinition {
	return PortDefinition{ID: id, Name: id, DataType: dataType, Required: required}
}
