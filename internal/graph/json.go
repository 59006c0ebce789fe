package graph

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var xy [2]float64
	if err := json.Unmarshal(data, &xy); err != nil {
		return fmt.Errorf("position must be [x, y]: %w", err)
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

type graphJSON struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Nodes       map[string]Node `json:"nodes"`
	Connections []Connection    `json:"connections"`
}

// MarshalJSON encodes the graph with its config values in tagged form.
func (g *Graph) MarshalJSON() ([]byte, error) {
	conns := g.connections
	if conns == nil {
		conns = []Connection{}
	}
	return json.Marshal(graphJSON{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Nodes:       g.nodes,
		Connections: conns,
	})
}

// UnmarshalJSON rebuilds the graph through AddNode and AddConnection, so a
// decoded graph satisfies the same invariants as one built in code. A node
// whose id is empty takes its map key.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var raw graphJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := New(raw.ID, raw.Name)
	out.Description = raw.Description
	for _, key := range slices.Sorted(maps.Keys(raw.Nodes)) {
		n := raw.Nodes[key]
		if n.ID == "" {
			n.ID = key
		}
		if n.ID != key {
			return fmt.Errorf("graph '%s': node keyed '%s' has id '%s'", raw.ID, key, n.ID)
		}
		if err := out.AddNode(n); err != nil {
			return fmt.Errorf("graph '%s': %w", raw.ID, err)
		}
	}
	for i, c := range raw.Connections {
		if err := out.AddConnection(c); err != nil {
			return fmt.Errorf("graph '%s': connection %d: %w", raw.ID, i, err)
		}
	}
	*g = *out
	return nil
}
