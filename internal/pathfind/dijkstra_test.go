package pathfind

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ashgrove-school/routeopt/internal/congestion"
	"github.com/ashgrove-school/routeopt/internal/schoolgraph"
)

func TestShortestPath_sameNode(t *testing.T) {
	g := schoolgraph.New()
	g.AddEdge("G", "A1", 5, 0)
	c := congestion.New(g.NumNodes())
	gID, _ := g.Lookup("G")

	got := ShortestPath(g, c, gID, gID)

	want := []schoolgraph.NodeID{gID, gID}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ShortestPath(G, G): mismatch (-want +got):\n%s", diff)
	}
}

func TestShortestPath_zeroCongestionMatchesUnpenalized(t *testing.T) {
	g := schoolgraph.New()
	g.AddEdge("A", "B", 10, 0)
	g.AddEdge("A", "C", 10, 0)
	g.AddEdge("C", "B", 1, 0)
	c := congestion.New(g.NumNodes())
	a, _ := g.Lookup("A")
	b, _ := g.Lookup("B")

	got := ShortestPath(g, c, a, b)

	want := []schoolgraph.NodeID{a, b}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ShortestPath(A, B) with zero congestion: mismatch (-want +got):\n%s", diff)
	}
}

func TestShortestPath_avoidsCongestedEdge(t *testing.T) {
	g := schoolgraph.New()
	g.AddEdge("A", "B", 10, 0)
	g.AddEdge("A", "C", 10, 0)
	g.AddEdge("C", "B", 1, 0)
	a, _ := g.Lookup("A")
	b, _ := g.Lookup("B")
	cNode, _ := g.Lookup("C")

	c := congestion.New(g.NumNodes())
	c.Add(a, b, 200)
	c.Add(b, a, 200)

	got := ShortestPath(g, c, a, b)

	want := []schoolgraph.NodeID{a, cNode, b}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ShortestPath(A, B) with congested A-B: mismatch (-want +got):\n%s", diff)
	}
}

func TestShortestPath_panicsOnUnreachable(t *testing.T) {
	g := schoolgraph.New()
	g.Intern("A")
	g.Intern("B")
	c := congestion.New(g.NumNodes())
	a, _ := g.Lookup("A")
	b, _ := g.Lookup("B")

	defer func() {
		if recover() == nil {
			t.Errorf("ShortestPath(A, B) with no edges: want panic, got none")
		}
	}()
	ShortestPath(g, c, a, b)
}
