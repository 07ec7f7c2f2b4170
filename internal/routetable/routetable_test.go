package routetable

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ashgrove-school/routeopt/internal/schoolgraph"
)

func TestConcatenateVectorizeRoundTrip(t *testing.T) {
	testCases := []string{
		"G A1",
		"A1 A2 A3 G",
		"A1",
		"",
	}
	for _, s := range testCases {
		if got := Concatenate(Vectorize(s)); got != s {
			t.Errorf("Concatenate(Vectorize(%q)): want %q, got %q", s, s, got)
		}
	}
}

func TestToNodes_FromNodes_roundTrip(t *testing.T) {
	g := schoolgraph.New()
	g.AddEdge("G", "A1", 5, 0)
	g.AddEdge("A1", "A2", 7, 0)

	route := "G A1 A2"
	ids := ToNodes(g, route)
	if got := FromNodes(g, ids); got != route {
		t.Errorf("FromNodes(ToNodes(%q)): want %q, got %q", route, route, got)
	}
}

func TestToNodes_empty(t *testing.T) {
	g := schoolgraph.New()
	if got := ToNodes(g, ""); got != nil {
		t.Errorf("ToNodes(\"\"): want nil, got %v", got)
	}
}

func TestTable_GetSet(t *testing.T) {
	tbl := New()
	tbl.Set("1001", "1", "0", "G A1")

	got, ok := tbl.Get("1001", "1", "0")
	if !ok {
		t.Fatalf("Get(1001,1,0): want present")
	}
	if got != "G A1" {
		t.Errorf("Get(1001,1,0): want %q, got %q", "G A1", got)
	}

	if _, ok := tbl.Get("1001", "1", "2"); ok {
		t.Errorf("Get(1001,1,2): want absent")
	}
}

func TestTable_Students_sorted(t *testing.T) {
	tbl := New()
	tbl.Set("22500", "1", "0", "")
	tbl.Set("21500", "1", "0", "")

	want := []string{"21500", "22500"}
	if diff := cmp.Diff(want, tbl.Students()); diff != "" {
		t.Errorf("Students(): mismatch (-want +got):\n%s", diff)
	}
}
