package period

import (
	"strconv"
	"testing"

	"github.com/ashgrove-school/routeopt/internal/schoolgraph"
)

func buildS3() (*schoolgraph.Graph, map[string]schoolgraph.NodeID) {
	g := schoolgraph.New()
	g.AddEdge("A", "B", 10, 0)
	g.AddEdge("A", "C", 10, 0)
	g.AddEdge("C", "B", 1, 0)
	ids := map[string]schoolgraph.NodeID{}
	for _, n := range []string{"A", "B", "C"} {
		id, _ := g.Lookup(n)
		ids[n] = id
	}
	return g, ids
}

func TestNew_initialSigmaMatchesSum(t *testing.T) {
	g, id := buildS3()
	routes := map[string][]schoolgraph.NodeID{
		"1001": {id["A"], id["B"]},
	}
	o := New(g, []string{"1001"}, routes, 10)

	if o.Sigma() <= 0 {
		t.Fatalf("Sigma(): want > 0 for a nonempty route, got %f", o.Sigma())
	}
	if o.BestSigma() != o.Sigma() {
		t.Errorf("BestSigma() should match Sigma() right after New: %f != %f", o.BestSigma(), o.Sigma())
	}
}

func TestStep_reroutesAroundCongestedPair(t *testing.T) {
	g, id := buildS3()
	students := []string{"1001"}
	for i := 2; i <= 200; i++ {
		students = append(students, strconv.Itoa(i))
	}
	routes := map[string][]schoolgraph.NodeID{}
	for _, s := range students {
		routes[s] = []schoolgraph.NodeID{id["A"], id["B"]}
	}

	o := New(g, students, routes, 10)
	for i := 0; i < 4000; i++ {
		o.Step()
	}

	// With every student congesting A->B, the optimizer should have
	// diverted at least some of them onto the uncongested A-C-B detour.
	found := false
	for _, route := range o.Routes() {
		if len(route) == 3 {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Routes(): expected at least one student diverted via A-C-B, got none")
	}
}

func TestStep_monotonicBestSigma(t *testing.T) {
	g, id := buildS3()
	students := []string{}
	routes := map[string][]schoolgraph.NodeID{}
	// 200 students on A->B make the A-C-B detour score better under
	// perf.Index, so batches have an improvement to commit.
	for i := 1; i <= 200; i++ {
		s := strconv.Itoa(i)
		students = append(students, s)
		routes[s] = []schoolgraph.NodeID{id["A"], id["B"]}
	}

	o := New(g, students, routes, 5)

	prev := o.BestSigma()
	boundaries := 0
	for i := 0; i < 2000 && boundaries < 5; i++ {
		before := o.BestSigma()
		o.Step()
		after := o.BestSigma()
		if after != before {
			boundaries++
			if after > prev {
				t.Fatalf("BestSigma() increased across a committed boundary: %f -> %f", prev, after)
			}
			prev = after
		}
	}
	if boundaries == 0 {
		t.Fatalf("expected at least one committed batch boundary in 2000 steps")
	}
}
