// Package pathfind implements single-source shortest paths over a
// schoolgraph.Graph with edge weights penalized by per-edge congestion.
package pathfind

import (
	"fmt"
	"math"

	"github.com/rhartert/yagh"

	"github.com/ashgrove-school/routeopt/internal/congestion"
	"github.com/ashgrove-school/routeopt/internal/schoolgraph"
)

// CongestionPenalty is the weight added per unit of congestion on a directed
// edge during penalized search.
const CongestionPenalty = 10_000

// inf is a well-defined, overflow-safe "unreachable" sentinel: halving
// math.MaxInt means two finite distances can always be summed without
// wrapping.
const inf = math.MaxInt / 2

// ShortestPath returns the shortest route from s to t in g, where each
// traversal of edge (u, v) costs w(u, v) + CongestionPenalty * c.Count(u, v).
//
// If s == t, ShortestPath returns the two-element sentinel [G, G] meaning
// "stationary / spare period"; package perf recognizes this and scores it 0.
//
// ShortestPath panics if t turns out to be unreachable from s: the school's
// room-to-room subgraph is assumed connected, so an unreachable destination
// indicates corrupt input data rather than a condition the search can
// recover from.
func ShortestPath(g *schoolgraph.Graph, c *congestion.Matrix, s, t schoolgraph.NodeID) []schoolgraph.NodeID {
	ground := g.Ground()
	if s == t {
		return []schoolgraph.NodeID{ground, ground}
	}

	n := g.NumNodes()
	dist := make([]int, n)
	visited := make([]bool, n)
	prev := make([]schoolgraph.NodeID, n)
	hasPrev := make([]bool, n)
	for i := range dist {
		dist[i] = inf
	}
	dist[s] = 0

	h := yagh.New[int](n)
	h.Put(int(s), 0)

	for h.Size() > 0 {
		entry := h.Pop()
		u := schoolgraph.NodeID(entry.Elem)
		if visited[u] {
			continue // stale entry for an already-finalized node
		}
		visited[u] = true
		if u == t {
			break
		}

		for _, he := range g.Neighbors(u) {
			v := he.To
			if visited[v] {
				continue
			}
			weight := he.Weight + CongestionPenalty*c.Count(u, v)
			newDist := dist[u] + weight
			if newDist < dist[v] {
				dist[v] = newDist
				prev[v] = u
				hasPrev[v] = true
				h.Put(int(v), newDist)
			}
		}
	}

	if !hasPrev[t] {
		panic(fmt.Sprintf("pathfind: %q is unreachable from %q; room-to-room subgraph must be connected", g.Name(t), g.Name(s)))
	}

	path := []schoolgraph.NodeID{t}
	for cur := t; cur != s; {
		cur = prev[cur]
		path = append(path, cur)
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}
