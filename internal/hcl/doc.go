// Package hcl is the declarative front end. It parses graph files written in
// HCL, evaluates their expressions with a small cty function library, and
// builds graph.Graph values through the graph package's own invariant
// checks.
package hcl
