// Package ioformat reads and writes the JSON file formats at the module's
// external boundary: the weekly timetable, the precomputed shortest-paths
// table, and the resumable route-state checkpoint.
package ioformat

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ashgrove-school/routeopt/internal/apsp"
	"github.com/ashgrove-school/routeopt/internal/routetable"
	"github.com/ashgrove-school/routeopt/internal/schoolgraph"
	"github.com/ashgrove-school/routeopt/internal/timetable"
)

// ReadTimetable reads the weekly per-student room-assignment file:
// student-id -> day-key -> slot-key -> room name.
func ReadTimetable(path string) (timetable.Timetable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ioformat: open timetable %q: %w", path, err)
	}
	defer f.Close()

	var tt timetable.Timetable
	if err := json.NewDecoder(f).Decode(&tt); err != nil {
		return nil, fmt.Errorf("ioformat: decode timetable %q: %w", path, err)
	}
	return tt, nil
}

// ShortestPaths is a read-only room-to-room route lookup loaded from the
// precomputed shortest-paths file, implementing timetable.ShortestPaths.
type ShortestPaths struct {
	routes map[string]string
}

// Route returns the precomputed route string between two room-like node
// names, keyed by their concatenation ("A101" + "B203" -> "A101B203").
func (s *ShortestPaths) Route(from, to string) (string, bool) {
	route, ok := s.routes[from+to]
	return route, ok
}

// ReadShortestPaths reads the precomputed shortest-paths file: a JSON object
// mapping a concatenated room-pair key to a space-separated route string.
func ReadShortestPaths(path string) (*ShortestPaths, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ioformat: open shortest-paths %q: %w", path, err)
	}
	defer f.Close()

	var routes map[string]string
	if err := json.NewDecoder(f).Decode(&routes); err != nil {
		return nil, fmt.Errorf("ioformat: decode shortest-paths %q: %w", path, err)
	}
	return &ShortestPaths{routes: routes}, nil
}

// WriteShortestPaths materializes t's room-to-room paths into the external
// concatenated-key JSON format and writes them to path. Used by
// cmd/genpaths; written through the same temp-file-and-rename helper as
// WriteRouteState.
func WriteShortestPaths(path string, g *schoolgraph.Graph, t *apsp.Table) error {
	out := make(map[string]string)
	for pair, nodes := range t.Paths() {
		from, to := g.Name(pair[0]), g.Name(pair[1])
		names := make([]string, len(nodes))
		for i, id := range nodes {
			names[i] = g.Name(id)
		}
		out[from+to] = routetable.Concatenate(names)
	}
	return writeJSON(path, out)
}

// WriteDistances writes the shortest-path distance between every ordered
// pair of distinct room-like nodes, keyed the same way as
// WriteShortestPaths but with an integer value.
func WriteDistances(path string, g *schoolgraph.Graph, t *apsp.Table) error {
	out := make(map[string]int)
	n := g.NumNodes()
	for u := 0; u < n; u++ {
		uid := schoolgraph.NodeID(u)
		if !g.IsRoomLike(uid) {
			continue
		}
		for v := 0; v < n; v++ {
			vid := schoolgraph.NodeID(v)
			if uid == vid || !g.IsRoomLike(vid) {
				continue
			}
			d, ok := t.Distance(uid, vid)
			if !ok {
				continue
			}
			out[g.Name(uid)+g.Name(vid)] = d
		}
	}
	return writeJSON(path, out)
}

// RouteState is the resumable checkpoint format: per-day iteration counters,
// the per-(day,period) best performance-index sum, and the full route
// table.
type RouteState struct {
	Iter    []int                                    `json:"iter"`
	Indices map[string]map[string]int                `json:"indices"`
	Routes  map[string]map[string]map[string]string  `json:"routes"`
}

// ReadRouteState reads a route-state file. A missing file is not an error:
// it returns a zero-value RouteState so a fresh run can seed itself from
// the timetable expander instead.
func ReadRouteState(path string) (*RouteState, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return &RouteState{
			Indices: map[string]map[string]int{},
			Routes:  map[string]map[string]map[string]string{},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ioformat: open route state %q: %w", path, err)
	}
	defer f.Close()

	var rs RouteState
	if err := json.NewDecoder(f).Decode(&rs); err != nil {
		return nil, fmt.Errorf("ioformat: decode route state %q: %w", path, err)
	}
	return &rs, nil
}

// WriteRouteState atomically writes state to path: it is serialized to a
// temporary file in the same directory, then renamed over path, so a reader
// never observes a partially-written file.
func WriteRouteState(path string, state *RouteState) error {
	return writeJSON(path, state)
}

func writeJSON(path string, v any) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".routeopt-tmp-*")
	if err != nil {
		return fmt.Errorf("ioformat: create temp file in %q: %w", dir, err)
	}
	tmpPath := tmp.Name()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("ioformat: encode %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("ioformat: close temp file for %q: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("ioformat: rename into %q: %w", path, err)
	}
	return nil
}
