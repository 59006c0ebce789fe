package graph

import (
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/circuitgo/internal/value"
)

// Position is a display hint. It has no effect on execution.
type Position struct {
	X, Y float64
}

// Node is an instance of a block type within a graph.
type Node struct {
	ID        string    `json:"id"`
	BlockType string    `json:"block_type"`
	Config    value.Map `json:"config"`
	Position  *Position `json:"position,omitempty"`
}

// Connection is a directed edge from an output port to an input port.
type Connection struct {
	FromNode string `json:"from_node"`
	FromPort string `json:"from_port"`
	ToNode   string `json:"to_node"`
	ToPort   string `json:"to_port"`
}

func (c Connection) String() string {
	return fmt.Sprintf("%s.%s -> %s.%s", c.FromNode, c.FromPort, c.ToNode, c.ToPort)
}

// Graph holds nodes keyed by id and connections in insertion order. The zero
// value is an empty graph without an id.
type Graph struct {
	ID          string
	Name        string
	Description string

	nodes       map[string]Node
	connections []Connection
}

// New creates an empty graph.
func New(id, name string) *Graph {
	return &Graph{
		ID:    id,
		Name:  name,
		nodes: make(map[string]Node),
	}
}

// AddNode inserts n, failing if a node with the same id already exists.
func (g *Graph) AddNode(n Node) error {
	if _, exists := g.nodes[n.ID]; exists {
		return fmt.Errorf("node '%s': %w", n.ID, ErrDuplicateNode)
	}
	if g.nodes == nil {
		g.nodes = make(map[string]Node)
	}
	g.nodes[n.ID] = n
	return nil
}

// RemoveNode deletes the node and every connection that touches it.
func (g *Graph) RemoveNode(id string) error {
	if _, exists := g.nodes[id]; !exists {
		return fmt.Errorf("node '%s': %w", id, ErrNodeNotFound)
	}
	delete(g.nodes, id)
	g.connections = slices.DeleteFunc(g.connections, func(c Connection) bool {
		return c.FromNode == id || c.ToNode == id
	})
	return nil
}

// AddConnection appends c after checking that both endpoints exist and that
// the edge would not close a cycle. On failure the graph is unchanged.
func (g *Graph) AddConnection(c Connection) error {
	if _, exists := g.nodes[c.FromNode]; !exists {
		return fmt.Errorf("connection source node '%s': %w", c.FromNode, ErrNodeNotFound)
	}
	if _, exists := g.nodes[c.ToNode]; !exists {
		return fmt.Errorf("connection target node '%s': %w", c.ToNode, ErrNodeNotFound)
	}
	if g.wouldCreateCycle(c) {
		return fmt.Errorf("%w %s: %w", ErrInvalidConnection, c, ErrCycleDetected)
	}
	g.connections = append(g.connections, c)
	return nil
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// HasNode reports whether the graph contains id.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// NodeIDs returns all node ids in lexicographic order.
func (g *Graph) NodeIDs() []string {
	return slices.Sorted(maps.Keys(g.nodes))
}

// Nodes returns all nodes ordered by id.
func (g *Graph) Nodes() []Node {
	ids := g.NodeIDs()
	out := make([]Node, len(ids))
	for i, id := range ids {
		out[i] = g.nodes[id]
	}
	return out
}

// Connections returns a copy of the connection list in insertion order.
func (g *Graph) Connections() []Connection {
	return slices.Clone(g.connections)
}

// IncomingConnections returns the connections whose target is id, in
// insertion order.
func (g *Graph) IncomingConnections(id string) []Connection {
	var out []Connection
	for _, c := range g.connections {
		if c.ToNode == id {
			out = append(out, c)
		}
	}
	return out
}

// OutgoingConnections returns the connections whose source is id, in
// insertion order.
func (g *Graph) OutgoingConnections(id string) []Connection {
	var out []Connection
	for _, c := range g.connections {
		if c.FromNode == id {
			out = append(out, c)
		}
	}
	return out
}

// Clone returns a deep copy that shares no mutable state with g.
func (g *Graph) Clone() *Graph {
	cp := &Graph{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		nodes:       make(map[string]Node, len(g.nodes)),
		connections: slices.Clone(g.connections),
	}
	for id, n := range g.nodes {
		n.Config = n.Config.Clone()
		if n.Position != nil {
			p := *n.Position
			n.Position = &p
		}
		cp.nodes[id] = n
	}
	return cp
}
