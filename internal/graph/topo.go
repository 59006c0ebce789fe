package graph

import (
	"container/heap"
	"fmt"
)

// idHeap is a min-heap of node ids.
type idHeap []string

func (h idHeap) Len() int           { return len(h) }
func (h idHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h idHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *idHeap) Push(x any)        { *h = append(*h, x.(string)) }
func (h *idHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// TopologicalSort returns every node id exactly once, each after all of its
// producers. Among nodes that are ready at the same time the smallest id
// comes first.
func (g *Graph) TopologicalSort() ([]string, error) {
	inDegree := make(map[string]int, len(g.nodes))
	for id := range g.nodes {
		inDegree[id] = 0
	}
	for _, c := range g.connections {
		if _, ok := inDegree[c.FromNode]; !ok {
			return nil, fmt.Errorf("connection %s references unknown node '%s': %w", c, c.FromNode, ErrNodeNotFound)
		}
		if _, ok := inDegree[c.ToNode]; !ok {
			return nil, fmt.Errorf("connection %s references unknown node '%s': %w", c, c.ToNode, ErrNodeNotFound)
		}
		inDegree[c.ToNode]++
	}

	ready := &idHeap{}
	for id, d := range inDegree {
		if d == 0 {
			*ready = append(*ready, id)
		}
	}
	heap.Init(ready)

	adj := g.adjacency()
	order := make([]string, 0, len(g.nodes))
	for ready.Len() > 0 {
		id := heap.Pop(ready).(string)
		order = append(order, id)
		for _, succ := range adj[id] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				heap.Push(ready, succ)
			}
		}
	}

	if len(order) < len(g.nodes) {
		return nil, fmt.Errorf("graph '%s': %d of %d nodes could not be ordered: %w",
			g.ID, len(g.nodes)-len(order), len(g.nodes), ErrCycleDetected)
	}
	return order, nil
}
