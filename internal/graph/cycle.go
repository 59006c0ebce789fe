package graph

// adjacency maps each node id to its successors, one entry per connection.
func (g *Graph) adjacency(extra ...Connection) map[string][]string {
	adj := make(map[string][]string, len(g.nodes))
	for _, c := range g.connections {
		adj[c.FromNode] = append(adj[c.FromNode], c.ToNode)
	}
	for _, c := range extra {
		adj[c.FromNode] = append(adj[c.FromNode], c.ToNode)
	}
	return adj
}

type frame struct {
	id   string
	next int
}

// wouldCreateCycle runs a depth-first search from every node over the
// existing connections plus candidate, and reports whether it meets a node
// that is still on the current path. The search keeps its own stack so deep
// graphs cannot exhaust the goroutine stack.
func (g *Graph) wouldCreateCycle(candidate Connection) bool {
	adj := g.adjacency(candidate)
	visited := make(map[string]bool, len(g.nodes))
	onPath := make(map[string]bool)

	for _, root := range g.NodeIDs() {
		if visited[root] {
			continue
		}
		stack := []frame{{id: root}}
		visited[root] = true
		onPath[root] = true

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			succ := adj[top.id]
			if top.next == len(succ) {
				onPath[top.id] = false
				stack = stack[:len(stack)-1]
				continue
			}
			next := succ[top.next]
			top.next++

			if onPath[next] {
				return true
			}
			if !visited[next] {
				visited[next] = true
				onPath[next] = true
				stack = append(stack, frame{id: next})
			}
		}
	}
	return false
}
