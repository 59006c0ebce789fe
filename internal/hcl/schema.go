package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is the top level of a graph file.
type fileRoot struct {
	Graphs []*graphBlock `hcl:"graph,block"`
}

type graphBlock struct {
	ID          string          `hcl:"id,label"`
	Name        string          `hcl:"name,optional"`
	Description string          `hcl:"description,optional"`
	Nodes       []*nodeBlock    `hcl:"node,block"`
	Connections []*connectBlock `hcl:"connect,block"`
}

type nodeBlock struct {
	ID       string         `hcl:"id,label"`
	Type     string         `hcl:"type"`
	Position hcl.Expression `hcl:"position,optional"`
	Config   hcl.Expression `hcl:"config,optional"`
}

// connectBlock keeps both endpoints as raw expressions; they are read as
// traversals, never evaluated against a node namespace.
type connectBlock struct {
	From hcl.Expression `hcl:"from"`
	To   hcl.Expression `hcl:"to"`
}
