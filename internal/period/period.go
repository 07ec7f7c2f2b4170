// Package period implements the single-period route optimizer: an
// iterative, priority-driven local search that repeatedly reroutes the
// worst-performing student under a congestion-penalized shortest path and
// commits or rejects the result in batches.
package period

import (
	"log"

	"github.com/rhartert/yagh"

	"github.com/ashgrove-school/routeopt/internal/congestion"
	"github.com/ashgrove-school/routeopt/internal/pathfind"
	"github.com/ashgrove-school/routeopt/internal/perf"
	"github.com/ashgrove-school/routeopt/internal/schoolgraph"
)

// studentPath is one student's current route and its performance index
// under the optimizer's congestion matrix. Every student has exactly one
// entry for the lifetime of an Optimizer; H and T only ever hold indices
// into this slice, never copies of it.
type studentPath struct {
	student string
	route   []schoolgraph.NodeID
	rperf   float64
}

// Optimizer runs the local search for one (day, period). Its state — H, Σ,
// C, T, and the accepted-state snapshot — belongs to this period alone and
// is safe to drive from a dedicated goroutine without synchronization, so
// long as nothing outside reaches into the graph g or congestion matrix c.
type Optimizer struct {
	g *schoolgraph.Graph
	c *congestion.Matrix

	batchSize int
	stepCount int

	paths []studentPath
	h     *yagh.IntMap[float64]
	t     []int
	sigma float64

	hasLast            bool
	lastStart, lastEnd schoolgraph.NodeID

	snapRoutes [][]schoolgraph.NodeID
	snapRperf  []float64
	snapSigma  float64
}

// New builds an Optimizer for the students and their initial routes
// (student id -> route, already expressed as node sequences; a missing or
// empty route is expected to already be the [G, G] sentinel). students
// should be supplied in a stable order — callers typically sort ids first —
// so that runs over identical inputs explore the heap identically.
func New(g *schoolgraph.Graph, students []string, routes map[string][]schoolgraph.NodeID, batchSize int) *Optimizer {
	n := g.NumNodes()
	o := &Optimizer{
		g:         g,
		c:         congestion.New(n),
		batchSize: batchSize,
		paths:     make([]studentPath, len(students)),
		h:         yagh.New[float64](len(students)),
	}

	for i, s := range students {
		route := routes[s]
		o.c.AddRoute(route)
		o.paths[i] = studentPath{student: s, route: route}
	}
	for i := range o.paths {
		rperf, err := perf.Index(o.paths[i].route, o.c, g)
		if err != nil {
			rperf = 0
		}
		o.paths[i].rperf = rperf
		o.sigma += rperf
		o.h.Put(i, -rperf)
	}
	o.snapshotInto(&o.snapRoutes, &o.snapRperf)
	o.snapSigma = o.sigma
	return o
}

// Sigma returns the running sum of every student's rperf under the
// optimizer's current (possibly mid-batch) congestion matrix.
func (o *Optimizer) Sigma() float64 { return o.sigma }

// BestSigma returns Σ as of the last committed batch boundary — the
// best-ever value, since acceptance only commits non-worsening batches.
func (o *Optimizer) BestSigma() float64 { return o.snapSigma }

// Routes returns the accepted (snapshot) route for every student, as of the
// last committed batch boundary. The returned map is a fresh copy.
func (o *Optimizer) Routes() map[string][]schoolgraph.NodeID {
	out := make(map[string][]schoolgraph.NodeID, len(o.paths))
	for i, p := range o.paths {
		out[p.student] = o.snapRoutes[i]
	}
	return out
}

// Step performs one inner step: it pops the worst offender from H, diverts
// repeated stuck pairs to T, and rerouts the chosen candidate under a
// penalized Dijkstra. A batch boundary fires either because this step
// drained H without finding a reroutable candidate, or because batchSize
// inner steps have elapsed.
func (o *Optimizer) Step() {
	o.stepCount++

	for {
		if o.h.Size() == 0 {
			o.batchBoundary()
			return
		}
		entry := o.h.Pop()
		idx := entry.Elem
		route := o.paths[idx].route
		s, e := route[0], route[len(route)-1]

		if o.hasLast && s == o.lastStart && e == o.lastEnd {
			o.t = append(o.t, idx)
			continue
		}

		o.reroute(idx, s, e)
		break
	}

	if o.stepCount >= o.batchSize {
		o.batchBoundary()
	}
}

func (o *Optimizer) reroute(idx int, s, e schoolgraph.NodeID) {
	old := o.paths[idx]
	o.sigma -= old.rperf

	newRoute := pathfind.ShortestPath(o.g, o.c, s, e)
	newRperf, err := perf.Index(newRoute, o.c, o.g)
	if err != nil {
		// Corrupt route data for this candidate: leave it exactly as it
		// was, park it in T, and try another candidate next step.
		log.Printf("period: student %s: %s", old.student, err)
		o.sigma += old.rperf
		o.t = append(o.t, idx)
		return
	}

	if newRperf < old.rperf {
		o.c.RemoveRoute(old.route)
		o.c.AddRoute(newRoute)
		o.paths[idx] = studentPath{student: old.student, route: newRoute, rperf: newRperf}
		o.sigma += newRperf
		o.h.Put(idx, -newRperf)
		return
	}

	o.t = append(o.t, idx)
	o.sigma += old.rperf
	o.lastStart, o.lastEnd = s, e
	o.hasLast = true
}

// batchBoundary recomputes C from scratch over every student's current
// route, rebuilds H, and either commits the result as the new accepted
// snapshot or reverts to the previous one.
func (o *Optimizer) batchBoundary() {
	o.stepCount = 0

	combined := o.drainAll()
	o.c.Reset()
	for _, idx := range combined {
		o.c.AddRoute(o.paths[idx].route)
	}

	newSigma := 0.0
	for _, idx := range combined {
		rperf, err := perf.Index(o.paths[idx].route, o.c, o.g)
		if err != nil {
			rperf = o.paths[idx].rperf
		}
		o.paths[idx].rperf = rperf
		newSigma += rperf
	}

	fresh := yagh.New[float64](len(o.paths))
	for _, idx := range combined {
		fresh.Put(idx, -o.paths[idx].rperf)
	}

	if newSigma <= o.snapSigma {
		o.commit(fresh, newSigma)
		return
	}
	o.revert()
}

func (o *Optimizer) commit(fresh *yagh.IntMap[float64], newSigma float64) {
	o.h = fresh
	o.t = o.t[:0]
	o.sigma = newSigma
	o.snapSigma = newSigma
	o.snapshotInto(&o.snapRoutes, &o.snapRperf)
}

// revert discards the just-recomputed batch and restores the last accepted
// snapshot, rebuilding C against the restored routes so C stays consistent
// with the routes actually being kept, not the rejected candidate set. It
// then demotes the snapshot's current worst offender into T so the next
// batch is forced to explore a different candidate.
func (o *Optimizer) revert() {
	for i := range o.paths {
		o.paths[i].route = o.snapRoutes[i]
		o.paths[i].rperf = o.snapRperf[i]
	}
	o.sigma = o.snapSigma

	o.c.Reset()
	for _, p := range o.paths {
		o.c.AddRoute(p.route)
	}

	restored := yagh.New[float64](len(o.paths))
	for i, p := range o.paths {
		restored.Put(i, -p.rperf)
	}

	o.t = o.t[:0]
	if restored.Size() > 0 {
		worst := restored.Pop()
		o.t = append(o.t, worst.Elem)
	}
	o.h = restored
}

// drainAll empties H and T into a single combined index slice covering
// every student exactly once.
func (o *Optimizer) drainAll() []int {
	combined := make([]int, 0, len(o.paths))
	for o.h.Size() > 0 {
		combined = append(combined, o.h.Pop().Elem)
	}
	combined = append(combined, o.t...)
	o.t = o.t[:0]
	return combined
}

func (o *Optimizer) snapshotInto(routes *[][]schoolgraph.NodeID, rperf *[]float64) {
	*routes = make([][]schoolgraph.NodeID, len(o.paths))
	*rperf = make([]float64, len(o.paths))
	for i, p := range o.paths {
		(*routes)[i] = p.route
		(*rperf)[i] = p.rperf
	}
}
