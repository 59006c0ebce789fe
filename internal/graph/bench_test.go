package graph

import (
	"fmt"
	"testing"
)

// chainGraph builds node0 -> node1 -> ... -> node<n-1>.
func chainGraph(tb testing.TB, n int) *Graph {
	tb.Helper()
	g := New(fmt.Sprintf("chain_%d", n), "")
	for i := 0; i < n; i++ {
		if err := g.AddNode(node(fmt.Sprintf("node%d", i))); err != nil {
			tb.Fatal(err)
		}
		if i > 0 {
			if err := g.AddConnection(conn(fmt.Sprintf("node%d", i-1), fmt.Sprintf("node%d", i))); err != nil {
				tb.Fatal(err)
			}
		}
	}
	return g
}

func BenchmarkTopologicalSort(b *testing.B) {
	for _, size := range []int{10, 50, 100, 500} {
		g := chainGraph(b, size)
		b.Run(fmt.Sprintf("N%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := g.TopologicalSort(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkAddConnection builds a whole chain per iteration; every
// connection runs a cycle search over the graph built so far.
func BenchmarkAddConnection(b *testing.B) {
	for _, size := range []int{10, 50, 100, 500} {
		b.Run(fmt.Sprintf("N%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				chainGraph(b, size)
			}
		})
	}
}
