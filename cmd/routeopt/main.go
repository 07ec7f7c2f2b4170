// Command routeopt runs the school corridor route optimizer for one day,
// checkpointing progress to a resumable route-state file.
package main

import (
	"context"
	"flag"
	"log"
	"math"
	"os"
	"os/signal"

	"github.com/ashgrove-school/routeopt/internal/day"
	"github.com/ashgrove-school/routeopt/internal/ioformat"
	"github.com/ashgrove-school/routeopt/internal/routetable"
	"github.com/ashgrove-school/routeopt/internal/schoolgraph"
	"github.com/ashgrove-school/routeopt/internal/timetable"
)

func main() {
	batchSize := flag.Int("b", 10, "batch size")
	stateFile := flag.String("f", "data/route_state.json", "route-state file (read on start, written on checkpoint)")
	dayIndex := flag.Int("d", 1, "day index to optimize (1-based)")
	saveSteps := flag.Int("s", 500, "outer iterations per checkpoint")
	graphPath := flag.String("graph", "data/paths.txt", "edge-list file")
	timetablePath := flag.String("timetable", "data/timetable.json", "timetable file")
	shortestPathsPath := flag.String("shortest-paths", "data/shortest_paths.json", "precomputed shortest-paths file")
	maxIterations := flag.Int("max-iterations", 0, "maximum outer iterations (0 = unbounded)")
	flag.Parse()

	g, err := schoolgraph.Load(*graphPath)
	if err != nil {
		log.Printf("routeopt: %s", err)
		os.Exit(1)
	}

	tt, err := ioformat.ReadTimetable(*timetablePath)
	if err != nil {
		log.Printf("routeopt: %s", err)
		os.Exit(1)
	}

	sp, err := ioformat.ReadShortestPaths(*shortestPathsPath)
	if err != nil {
		log.Printf("routeopt: %s", err)
		os.Exit(1)
	}

	r := timetable.Expand(tt, sp)
	overlayCheckpoint(r, *stateFile)

	maxIter := *maxIterations
	if maxIter <= 0 {
		maxIter = math.MaxInt
	}

	cfg := day.Config{
		BatchSize:     *batchSize,
		IterSaveSteps: *saveSteps,
		Day:           *dayIndex,
		MaxIterations: maxIter,
		StateFile:     *stateFile,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := day.Run(ctx, g, r, cfg); err != nil && err != context.Canceled {
		log.Printf("routeopt: %s", err)
		os.Exit(1)
	}
}

// overlayCheckpoint merges any routes already present in the state file at
// stateFile into r, so a resumed run continues from its own prior output
// instead of always restarting from the timetable's initial expansion.
func overlayCheckpoint(r routetable.Table, stateFile string) {
	rs, err := ioformat.ReadRouteState(stateFile)
	if err != nil {
		return
	}
	for student, days := range rs.Routes {
		for dayKey, periods := range days {
			for periodKey, route := range periods {
				r.Set(student, dayKey, periodKey, route)
			}
		}
	}
}
