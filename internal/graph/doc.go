// Package graph is the data model of a computation: uniquely identified
// nodes, each referencing a block type and carrying static configuration,
// and directed connections from an output port of one node to an input port
// of another.
//
// # Invariants
//
// The connection set is acyclic at all times. AddConnection checks the
// candidate edge before appending it and leaves the graph untouched when the
// check fails. RemoveNode never leaves a dangling connection behind.
//
// Port names are not validated here; they are resolved by string lookup when
// the engine executes the graph.
//
// # Ordering
//
// TopologicalSort uses Kahn's algorithm and breaks ties between nodes that
// are ready at the same time by picking the lexicographically smallest id,
// so a given graph always yields the same order.
package graph
