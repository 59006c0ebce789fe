// Package block defines the contract every computational unit implements:
// its Metadata, the Execute operation and the optional Validator hook, plus
// the ExecutionContext handed to Execute.
//
// Blocks are grouped into modules (see the registry package) and referenced
// from graph nodes by their metadata ID.
package block
