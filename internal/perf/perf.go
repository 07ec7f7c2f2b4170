// Package perf computes the performance index (r_perf) of a student route
// under a given congestion matrix.
package perf

import (
	"fmt"
	"math"

	"github.com/ashgrove-school/routeopt/internal/congestion"
	"github.com/ashgrove-school/routeopt/internal/schoolgraph"
)

// knee and slope set where the congestion penalty saturates: at c_i == knee
// the factor is exactly 2 (the midpoint of the (1, 3) range), and slope
// controls how sharply it approaches its 1 and 3 bounds around that point.
const (
	knee  = 300.0
	slope = 200.0
)

// Index computes r_perf for route under congestion matrix c over graph g.
//
// The [G, G] sentinel (a stationary/spare period) always scores 0. Otherwise
// the index sums, over every consecutive pair that does not touch the
// ground node G, the pair's edge weight scaled by a congestion factor in
// (1, 3): lightly used edges contribute close to their raw weight, heavily
// used ones saturate at about three times it.
//
// Index returns an error (rather than panicking) if a consecutive pair in
// route is not actually an edge of g, which can only happen if the route was
// built from corrupted data; the caller is expected to log and skip the
// offending step rather than crash the optimizer.
func Index(route []schoolgraph.NodeID, c *congestion.Matrix, g *schoolgraph.Graph) (float64, error) {
	ground := g.Ground()
	if len(route) == 2 && route[0] == ground && route[1] == ground {
		return 0, nil
	}

	var total float64
	for i := 1; i < len(route); i++ {
		from, to := route[i-1], route[i]
		if from == ground || to == ground {
			continue
		}

		w, ok := g.WeightBetween(from, to)
		if !ok {
			return 0, fmt.Errorf("perf: %q -> %q is not an edge of the graph", g.Name(from), g.Name(to))
		}

		c_i := c.Count(from, to)
		factor := 2 + math.Tanh((float64(c_i)-knee)/slope)
		total += float64(w) * factor
	}
	return total, nil
}
