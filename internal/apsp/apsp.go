// Package apsp computes all-pairs shortest paths over a schoolgraph.Graph
// using Floyd-Warshall, and materializes the room-to-room route table used
// to seed the optimizer.
package apsp

import (
	"math"

	"github.com/ashgrove-school/routeopt/internal/schoolgraph"
)

// inf is a well-defined "unreachable" sentinel. Halving math.MaxInt keeps
// dist[i][k]+dist[k][j] from overflowing during relaxation without resorting
// to floating point comparisons.
const inf = math.MaxInt / 2

const noPred = schoolgraph.NodeID(-1)

// Table holds the Floyd-Warshall distance and predecessor matrices and the
// materialized room-to-room paths derived from them.
type Table struct {
	n     int
	dist  []int
	pred  []schoolgraph.NodeID
	paths map[[2]schoolgraph.NodeID][]schoolgraph.NodeID
}

func at(n int, i, j schoolgraph.NodeID) int {
	return int(i)*n + int(j)
}

// Build runs Floyd-Warshall over g and materializes the shortest route
// between every ordered pair of distinct room-like nodes.
func Build(g *schoolgraph.Graph) *Table {
	n := g.NumNodes()
	t := &Table{
		n:    n,
		dist: make([]int, n*n),
		pred: make([]schoolgraph.NodeID, n*n),
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			idx := at(n, schoolgraph.NodeID(i), schoolgraph.NodeID(j))
			if i == j {
				t.dist[idx] = 0
			} else {
				t.dist[idx] = inf
			}
			t.pred[idx] = noPred
		}
	}

	for u := 0; u < n; u++ {
		uid := schoolgraph.NodeID(u)
		for _, he := range g.Neighbors(uid) {
			idx := at(n, uid, he.To)
			if he.Weight < t.dist[idx] {
				t.dist[idx] = he.Weight
				t.pred[idx] = uid
			}
		}
	}

	for k := 0; k < n; k++ {
		kid := schoolgraph.NodeID(k)
		for i := 0; i < n; i++ {
			iid := schoolgraph.NodeID(i)
			ik := t.dist[at(n, iid, kid)]
			if ik >= inf {
				continue
			}
			for j := 0; j < n; j++ {
				jid := schoolgraph.NodeID(j)
				kj := t.dist[at(n, kid, jid)]
				if kj >= inf {
					continue
				}
				ijIdx := at(n, iid, jid)
				if ik+kj < t.dist[ijIdx] {
					t.dist[ijIdx] = ik + kj
					t.pred[ijIdx] = t.pred[at(n, kid, jid)]
				}
			}
		}
	}

	t.materializeRoomPaths(g)
	return t
}

// Distance returns the shortest-path distance between u and v, or false if
// v is unreachable from u.
func (t *Table) Distance(u, v schoolgraph.NodeID) (int, bool) {
	d := t.dist[at(t.n, u, v)]
	if d >= inf {
		return 0, false
	}
	return d, true
}

// reconstruct walks the predecessor matrix from v back to u and reverses the
// result. An empty slice means u and v are not connected.
func (t *Table) reconstruct(u, v schoolgraph.NodeID) []schoolgraph.NodeID {
	if u == v {
		return []schoolgraph.NodeID{u}
	}
	if t.pred[at(t.n, u, v)] == noPred {
		return nil
	}

	path := []schoolgraph.NodeID{v}
	for cur := v; cur != u; {
		cur = t.pred[at(t.n, u, cur)]
		path = append(path, cur)
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}

func (t *Table) materializeRoomPaths(g *schoolgraph.Graph) {
	t.paths = map[[2]schoolgraph.NodeID][]schoolgraph.NodeID{}
	for u := 0; u < t.n; u++ {
		uid := schoolgraph.NodeID(u)
		if !g.IsRoomLike(uid) {
			continue
		}
		for v := 0; v < t.n; v++ {
			vid := schoolgraph.NodeID(v)
			if uid == vid || !g.IsRoomLike(vid) {
				continue
			}
			t.paths[[2]schoolgraph.NodeID{uid, vid}] = t.reconstruct(uid, vid)
		}
	}
}

// FromPaths wraps an externally-supplied room-to-room path set (typically
// read from a precomputed shortest-paths JSON file by package ioformat) in a
// Table that only supports Path/Paths lookups, not Distance.
func FromPaths(paths map[[2]schoolgraph.NodeID][]schoolgraph.NodeID) *Table {
	return &Table{paths: paths}
}

// Path returns the precomputed shortest route between room-like nodes u and
// v, or an empty slice if none was materialized (u == v, a non-room-like
// node, or unreachable).
func (t *Table) Path(u, v schoolgraph.NodeID) []schoolgraph.NodeID {
	return t.paths[[2]schoolgraph.NodeID{u, v}]
}

// Paths exposes the full materialized room-to-room path set, keyed by
// (from, to), for serialization by package ioformat.
func (t *Table) Paths() map[[2]schoolgraph.NodeID][]schoolgraph.NodeID {
	return t.paths
}
