// Package congestion tracks, for one period, how many student routes
// currently traverse each directed edge of the school graph.
package congestion

import (
	"github.com/rhartert/sparsesets"

	"github.com/ashgrove-school/routeopt/internal/schoolgraph"
)

// Matrix is a per-period congestion count over directed edges (u, v). It is
// consistent with the committed route set of its period: Reset followed by
// one AddRoute per route reproduces exactly the counts described in the
// optimizer's invariants.
//
// Rebuilding the matrix at every batch boundary means zeroing it is on the
// hot path. Rather than sweep every one of the n² possible directed slots,
// Matrix tracks which slots have been touched since the last Reset in a
// sparsesets.Set, so
// Reset costs O(touched), not O(n²).
type Matrix struct {
	n       int
	counts  []int
	touched *sparsesets.Set
}

// New returns an empty congestion matrix over a graph with n interned nodes.
func New(n int) *Matrix {
	return &Matrix{
		n:       n,
		counts:  make([]int, n*n),
		touched: sparsesets.New(n * n),
	}
}

func (m *Matrix) slot(u, v schoolgraph.NodeID) int {
	return int(u)*m.n + int(v)
}

// Count returns the number of routes currently traversing u->v.
func (m *Matrix) Count(u, v schoolgraph.NodeID) int {
	return m.counts[m.slot(u, v)]
}

// Add adds delta to the count on u->v (delta may be negative).
func (m *Matrix) Add(u, v schoolgraph.NodeID, delta int) {
	if delta == 0 {
		return
	}
	i := m.slot(u, v)
	if m.counts[i] == 0 {
		m.touched.Insert(i)
	}
	m.counts[i] += delta
}

// AddRoute increments the count of every consecutive directed pair along
// route by one.
func (m *Matrix) AddRoute(route []schoolgraph.NodeID) {
	for i := 1; i < len(route); i++ {
		m.Add(route[i-1], route[i], 1)
	}
}

// RemoveRoute undoes a prior AddRoute, decrementing the count of every
// consecutive directed pair along route by one.
func (m *Matrix) RemoveRoute(route []schoolgraph.NodeID) {
	for i := 1; i < len(route); i++ {
		m.Add(route[i-1], route[i], -1)
	}
}

// Reset zeroes every slot that has been touched since the last Reset.
func (m *Matrix) Reset() {
	for _, i := range m.touched.Content() {
		m.counts[i] = 0
	}
	m.touched.Clear()
}
