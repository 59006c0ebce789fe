// Package registry maps block type identifiers to their implementations.
//
// Blocks are registered one at a time or in groups through a Module. Every
// key is write-once: registering an identifier twice is an error, and there
// is no way to unregister. Nodes in a graph refer to blocks by the same
// identifier, which is the ID returned from the block's Metadata.
package registry
