// Package engine runs graphs. An Engine owns a block registry and a table of
// loaded graphs, both private to it; several engines can coexist without
// sharing state.
//
// Execution is synchronous and single-threaded. Nodes run strictly in the
// order produced by graph.TopologicalSort, so every producer has recorded
// its outputs before any consumer reads them. Execute stops at the first
// failing node and returns no outputs at all; ExecuteBestEffort keeps going
// and reports what it could compute.
//
// The engine does no locking. Hosts that share one Engine between
// goroutines must serialize access themselves.
package engine
