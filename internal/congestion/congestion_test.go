package congestion

import (
	"testing"

	"github.com/ashgrove-school/routeopt/internal/schoolgraph"
)

func TestMatrix_AddRoute(t *testing.T) {
	m := New(4)
	a, b, c := schoolgraph.NodeID(0), schoolgraph.NodeID(1), schoolgraph.NodeID(2)

	m.AddRoute([]schoolgraph.NodeID{a, b, c})

	if got := m.Count(a, b); got != 1 {
		t.Errorf("Count(a,b): want 1, got %d", got)
	}
	if got := m.Count(b, c); got != 1 {
		t.Errorf("Count(b,c): want 1, got %d", got)
	}
	if got := m.Count(c, a); got != 0 {
		t.Errorf("Count(c,a): want 0, got %d", got)
	}
}

func TestMatrix_Reset(t *testing.T) {
	m := New(4)
	a, b := schoolgraph.NodeID(0), schoolgraph.NodeID(1)

	m.AddRoute([]schoolgraph.NodeID{a, b})
	m.Reset()

	if got := m.Count(a, b); got != 0 {
		t.Errorf("Count(a,b) after Reset: want 0, got %d", got)
	}
}

func TestMatrix_RemoveRoute(t *testing.T) {
	m := New(4)
	a, b := schoolgraph.NodeID(0), schoolgraph.NodeID(1)

	m.AddRoute([]schoolgraph.NodeID{a, b})
	m.AddRoute([]schoolgraph.NodeID{a, b})
	m.RemoveRoute([]schoolgraph.NodeID{a, b})

	if got := m.Count(a, b); got != 1 {
		t.Errorf("Count(a,b) after one RemoveRoute: want 1, got %d", got)
	}
}

func TestMatrix_AddRoute_accumulates(t *testing.T) {
	m := New(4)
	a, b := schoolgraph.NodeID(0), schoolgraph.NodeID(1)

	m.AddRoute([]schoolgraph.NodeID{a, b})
	m.AddRoute([]schoolgraph.NodeID{a, b})

	if got := m.Count(a, b); got != 2 {
		t.Errorf("Count(a,b): want 2, got %d", got)
	}
}
