// Package day coordinates the period optimizer across one day's active
// periods, running them concurrently and periodically checkpointing the
// shared route table to disk.
package day

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ashgrove-school/routeopt/internal/ioformat"
	"github.com/ashgrove-school/routeopt/internal/period"
	"github.com/ashgrove-school/routeopt/internal/routetable"
	"github.com/ashgrove-school/routeopt/internal/schoolgraph"
)

// ActivePeriods lists the daily periods with actual corridor traffic to
// optimize. Periods {1,3,8,10} are excluded: all students are in class
// during them.
var ActivePeriods = []int{0, 2, 4, 5, 6, 7, 9, 11}

// Config holds one day's run parameters.
type Config struct {
	BatchSize     int
	IterSaveSteps int
	Day           int // 1-based
	MaxIterations int // 0 means unbounded
	StateFile     string
}

// checkpointMu serializes writes to the shared route table and state file
// across concurrently running Run calls (e.g. one per day sharing the same
// underlying routetable.Table). Inner steps never need it: each period's
// (H, Σ, C, T) is owned exclusively by its own period.Optimizer.
var checkpointMu sync.Mutex

// Run drives cfg.Day's active periods from r's initial routes, checkpointing
// to cfg.StateFile every cfg.IterSaveSteps outer iterations, until
// cfg.MaxIterations is reached or ctx is canceled.
func Run(ctx context.Context, g *schoolgraph.Graph, r routetable.Table, cfg Config) error {
	state, err := ioformat.ReadRouteState(cfg.StateFile)
	if err != nil {
		return err
	}

	dayKey := strconv.Itoa(cfg.Day)
	students := r.Students()

	ground := g.Ground()
	optimizers := make(map[int]*period.Optimizer, len(ActivePeriods))
	for _, p := range ActivePeriods {
		periodKey := strconv.Itoa(p)
		routes := make(map[string][]schoolgraph.NodeID, len(students))
		for _, s := range students {
			routeStr, _ := r.Get(s, dayKey, periodKey)
			nodes := routetable.ToNodes(g, routeStr)
			if len(nodes) < 2 {
				nodes = []schoolgraph.NodeID{ground, ground}
			}
			routes[s] = nodes
		}
		optimizers[p] = period.New(g, students, routes, cfg.BatchSize)
	}

	iter := 0
	if cfg.Day-1 < len(state.Iter) {
		iter = state.Iter[cfg.Day-1]
	}

	logger := log.New(os.Stdout, "", 0)

	for ; cfg.MaxIterations <= 0 || iter < cfg.MaxIterations; iter++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		grp, _ := errgroup.WithContext(ctx)
		for _, p := range ActivePeriods {
			p, opt := p, optimizers[p]
			grp.Go(func() error {
				opt.Step()
				logger.Printf("0 %d %d %d %f %f", iter, cfg.Day, p, opt.Sigma(), opt.BestSigma())
				return nil
			})
		}
		if err := grp.Wait(); err != nil {
			return fmt.Errorf("day: iteration %d: %w", iter, err)
		}

		if done := iter + 1; cfg.IterSaveSteps > 0 && done%cfg.IterSaveSteps == 0 {
			if err := checkpoint(g, r, dayKey, cfg, optimizers, state, done); err != nil {
				logger.Printf("! %d %d checkpoint failed: %s", done, cfg.Day, err)
			} else {
				logger.Printf("1 %d %d", done, cfg.Day)
			}
		}
	}
	return nil
}

// checkpoint drains every active period's accepted routes into r and
// state, then atomically persists state to cfg.StateFile.
func checkpoint(g *schoolgraph.Graph, r routetable.Table, dayKey string, cfg Config, optimizers map[int]*period.Optimizer, state *ioformat.RouteState, iter int) error {
	checkpointMu.Lock()
	defer checkpointMu.Unlock()

	dayIndices, ok := state.Indices[dayKey]
	if !ok {
		dayIndices = map[string]int{}
		state.Indices[dayKey] = dayIndices
	}

	for _, p := range ActivePeriods {
		opt := optimizers[p]
		periodKey := strconv.Itoa(p)
		for student, route := range opt.Routes() {
			r.Set(student, dayKey, periodKey, routetable.FromNodes(g, route))
		}
		dayIndices[periodKey] = int(opt.BestSigma())
	}

	for len(state.Iter) < cfg.Day {
		state.Iter = append(state.Iter, 0)
	}
	state.Iter[cfg.Day-1] = iter

	state.Routes = r
	return ioformat.WriteRouteState(cfg.StateFile, state)
}
