package graph

import "errors"

var (
	ErrDuplicateNode     = errors.New("duplicate node id")
	ErrNodeNotFound      = errors.New("node not found")
	ErrInvalidConnection = errors.New("invalid connection")
	ErrCycleDetected     = errors.New("cycle detected")
)
