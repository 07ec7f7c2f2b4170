// Package schoolgraph represents the school building as an undirected
// weighted graph over interned node identifiers.
package schoolgraph

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// NodeID is a dense, zero-based index assigned to a node the first time its
// name is seen. Using small integers instead of string keys keeps the
// adjacency, distance, and predecessor structures built on top of a Graph as
// flat arrays rather than string-keyed maps.
type NodeID int

// HalfEdge is one direction of an undirected edge.
type HalfEdge struct {
	To     NodeID
	Weight int
	Type   int
}

// Graph is an undirected weighted graph over interned node names.
type Graph struct {
	names     []string
	index     map[string]NodeID
	adjacency [][]HalfEdge
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{index: map[string]NodeID{}}
}

// Intern returns the NodeID for name, assigning a new one if name has not
// been seen before.
func (g *Graph) Intern(name string) NodeID {
	if id, ok := g.index[name]; ok {
		return id
	}
	id := NodeID(len(g.names))
	g.names = append(g.names, name)
	g.adjacency = append(g.adjacency, nil)
	g.index[name] = id
	return id
}

// Lookup returns the NodeID for name, if the node exists.
func (g *Graph) Lookup(name string) (NodeID, bool) {
	id, ok := g.index[name]
	return id, ok
}

// Name returns the original string name of id.
func (g *Graph) Name(id NodeID) string {
	return g.names[id]
}

// NumNodes returns the number of interned nodes.
func (g *Graph) NumNodes() int {
	return len(g.names)
}

// Neighbors returns the half-edges leaving id.
func (g *Graph) Neighbors(id NodeID) []HalfEdge {
	return g.adjacency[id]
}

// AddEdge inserts the undirected edge (u, v, w, t), storing both directed
// half-edges. No de-duplication is performed: a repeated edge simply adds
// another half-edge, and the last one added wins whenever adjacency is
// scanned in insertion order (e.g. weight lookups in package perf).
func (g *Graph) AddEdge(u, v string, weight, edgeType int) {
	ui := g.Intern(u)
	vi := g.Intern(v)
	g.adjacency[ui] = append(g.adjacency[ui], HalfEdge{To: vi, Weight: weight, Type: edgeType})
	g.adjacency[vi] = append(g.adjacency[vi], HalfEdge{To: ui, Weight: weight, Type: edgeType})
}

// IsRoomLike reports whether id's name begins with A, B, or G — a
// destination that routes may start or end at, as opposed to a
// transit-only corridor or junction node.
func (g *Graph) IsRoomLike(id NodeID) bool {
	return isRoomLike(g.names[id])
}

func isRoomLike(name string) bool {
	if name == "" {
		return false
	}
	switch name[0] {
	case 'A', 'B', 'G':
		return true
	default:
		return false
	}
}

// Ground returns the NodeID for the ground node "G", interning it if this
// is the first reference.
func (g *Graph) Ground() NodeID {
	return g.Intern("G")
}

// WeightBetween returns the weight of the edge u->v and whether it exists.
// If u->v was added more than once, the most recently added weight is
// returned.
func (g *Graph) WeightBetween(u, v NodeID) (int, bool) {
	adj := g.adjacency[u]
	for i := len(adj) - 1; i >= 0; i-- {
		if adj[i].To == v {
			return adj[i].Weight, true
		}
	}
	return 0, false
}

// Load reads an edge list file, one edge per line as "u v w t"
// (whitespace-delimited), and returns the resulting graph.
func Load(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("schoolgraph: open %q: %w", path, err)
	}
	defer f.Close()

	g := New()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 4 {
			return nil, fmt.Errorf("schoolgraph: malformed edge line %q", line)
		}
		w, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("schoolgraph: bad weight in %q: %w", line, err)
		}
		t, err := strconv.Atoi(parts[3])
		if err != nil {
			return nil, fmt.Errorf("schoolgraph: bad edge type in %q: %w", line, err)
		}
		g.AddEdge(parts[0], parts[1], w, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("schoolgraph: reading %q: %w", path, err)
	}
	return g, nil
}
