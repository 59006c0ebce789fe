// Package runstate tracks the mutable state of a single graph execution:
// each node's status, the outputs of completed nodes and the errors of
// failed ones.
//
// A Store is created fresh for every execution and discarded afterwards.
// Nodes that were never touched report StatusPending.
package runstate
