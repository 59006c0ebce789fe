package runstate

// Status is the execution state of one node.
type Status int32

const (
	// StatusPending means the node has not been reached yet.
	StatusPending Status = iota
	// StatusRunning means the node's block is executing.
	StatusRunning
	// StatusCompleted means the block returned outputs.
	StatusCompleted
	// StatusFailed means the block returned an error.
	StatusFailed
	// StatusSkipped means an upstream node failed, so this one never ran.
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	}
	return "unknown"
}

// MarshalText renders the status by name in JSON responses.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
