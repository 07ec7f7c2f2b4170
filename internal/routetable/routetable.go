// Package routetable holds the per-student, per-day, per-period route
// table R and the string<->node-sequence conversions used at its boundary.
package routetable

import (
	"sort"
	"strings"

	"github.com/ashgrove-school/routeopt/internal/schoolgraph"
)

// Table is student -> day -> period-index (as string, "0".."11") -> route
// string. An absent or empty-string cell means "no traversal this period."
type Table map[string]map[string]map[string]string

// New returns an empty route table.
func New() Table {
	return Table{}
}

// Get returns the route string for (student, day, period), and whether the
// cell is present at all (an empty string is a valid present value meaning
// "no traversal").
func (t Table) Get(student, day, period string) (string, bool) {
	days, ok := t[student]
	if !ok {
		return "", false
	}
	periods, ok := days[day]
	if !ok {
		return "", false
	}
	route, ok := periods[period]
	return route, ok
}

// Set records the route string for (student, day, period), creating
// intermediate maps as needed.
func (t Table) Set(student, day, period, route string) {
	days, ok := t[student]
	if !ok {
		days = map[string]map[string]string{}
		t[student] = days
	}
	periods, ok := days[day]
	if !ok {
		periods = map[string]string{}
		days[day] = periods
	}
	periods[period] = route
}

// Students returns the student ids present in the table, sorted for
// deterministic iteration.
func (t Table) Students() []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Vectorize splits a non-empty, single-space-separated route string into its
// node names.
func Vectorize(route string) []string {
	if route == "" {
		return nil
	}
	return strings.Split(route, " ")
}

// Concatenate joins node names into a single-space-separated route string.
// Concatenate(Vectorize(s)) == s for any s with no leading/trailing spaces.
func Concatenate(names []string) string {
	return strings.Join(names, " ")
}

// ToNodes converts a route string into interned node ids via g. An empty
// route string yields a nil slice.
func ToNodes(g *schoolgraph.Graph, route string) []schoolgraph.NodeID {
	names := Vectorize(route)
	if names == nil {
		return nil
	}
	ids := make([]schoolgraph.NodeID, len(names))
	for i, name := range names {
		ids[i] = g.Intern(name)
	}
	return ids
}

// FromNodes converts a node sequence back into a route string.
func FromNodes(g *schoolgraph.Graph, ids []schoolgraph.NodeID) string {
	if len(ids) == 0 {
		return ""
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = g.Name(id)
	}
	return Concatenate(names)
}
