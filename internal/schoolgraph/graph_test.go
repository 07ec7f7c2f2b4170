package schoolgraph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGraph_AddEdge_bothDirections(t *testing.T) {
	g := New()
	g.AddEdge("G", "A1", 5, 0)

	gid, _ := g.Lookup("G")
	aid, _ := g.Lookup("A1")

	want := []HalfEdge{{To: aid, Weight: 5, Type: 0}}
	if diff := cmp.Diff(want, g.Neighbors(gid)); diff != "" {
		t.Errorf("Neighbors(G): mismatch (-want +got):\n%s", diff)
	}

	want = []HalfEdge{{To: gid, Weight: 5, Type: 0}}
	if diff := cmp.Diff(want, g.Neighbors(aid)); diff != "" {
		t.Errorf("Neighbors(A1): mismatch (-want +got):\n%s", diff)
	}
}

func TestGraph_IsRoomLike(t *testing.T) {
	g := New()
	testCases := []struct {
		name string
		want bool
	}{
		{"G", true},
		{"A101", true},
		{"B203", true},
		{"C1", false},
		{"hall3", false},
	}
	for _, tc := range testCases {
		id := g.Intern(tc.name)
		if got := g.IsRoomLike(id); got != tc.want {
			t.Errorf("IsRoomLike(%q): want %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestGraph_Intern_stable(t *testing.T) {
	g := New()
	a := g.Intern("A1")
	b := g.Intern("A1")
	if a != b {
		t.Errorf("Intern(A1) twice: want same id, got %d and %d", a, b)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paths.txt")
	content := "G A1 5 0\nA1 A2 7 0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %s", err)
	}

	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %s", err)
	}

	if got, want := g.NumNodes(), 3; got != want {
		t.Errorf("NumNodes(): want %d, got %d", want, got)
	}

	gid, _ := g.Lookup("G")
	a1, _ := g.Lookup("A1")
	w, ok := g.WeightBetween(gid, a1)
	if !ok || w != 5 {
		t.Errorf("WeightBetween(G, A1): want (5, true), got (%d, %v)", w, ok)
	}
}

func TestLoad_missingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Errorf("Load(missing file): want error, got nil")
	}
}
