// Package timetable expands a weekly per-student room assignment into the
// initial per-period route table, following the school's period layout
// rules.
package timetable

import (
	"sort"
	"strconv"

	"github.com/ashgrove-school/routeopt/internal/routetable"
)

// Timetable is student-id -> day-key -> slot-key ("1".."10") -> room name.
type Timetable map[string]map[string]map[string]string

// ShortestPaths resolves the precomputed route string between two room-like
// node names, as read from the shortest-paths input file (see
// ioformat.ShortestPaths).
type ShortestPaths interface {
	Route(from, to string) (string, bool)
}

const groundNode = "G"

// seniorCutoff is the student-id threshold below which a student follows
// the lunch-return rule: ids strictly below it are seniors.
const seniorCutoff = 22000

func isTracked(room string) bool {
	if room == "" {
		return false
	}
	switch room[0] {
	case 'A', 'B', 'G':
		return true
	default:
		return false
	}
}

// Expand converts tt into the initial route table R: morning arrival at
// daily period 0, the afternoon block's first class (timetable slot "7")
// surfaced at daily period 7, the lunch gap at daily period 6, and the
// remaining periods 1-11 following the standard one-period-ahead lookup.
// Expand is deterministic: students, days, and periods are always visited
// in sorted order, so identical inputs produce a byte-identical R.
func Expand(tt Timetable, sp ShortestPaths) routetable.Table {
	r := routetable.New()
	for _, student := range sortedKeys(tt) {
		studentNum, err := strconv.Atoi(student)
		hasNum := err == nil
		for _, day := range sortedKeys(tt[student]) {
			expandDay(r, sp, student, day, tt[student][day], studentNum, hasNum)
		}
	}
	return r
}

func expandDay(r routetable.Table, sp ShortestPaths, student, day string, classes map[string]string, studentNum int, hasNum bool) {
	if room, ok := classes["1"]; ok {
		if route, ok := sp.Route(groundNode, room); ok {
			r.Set(student, day, "0", route)
		}
	}
	if room, ok := classes["7"]; ok {
		if route, ok := sp.Route(groundNode, room); ok {
			r.Set(student, day, "7", route)
		}
	}

	for p := 1; p <= 11; p++ {
		if p == 7 {
			continue // already handled above, surfaced at daily index 7
		}
		offset := 0
		if p > 7 {
			offset = 1
		}
		cur, ok := classes[strconv.Itoa(p-offset)]
		if !ok || !isTracked(cur) {
			continue
		}

		switch {
		case p == 6:
			expandLunchGap(r, sp, student, day, cur, studentNum, hasNum)
		case p == 11:
			if route, ok := sp.Route(cur, groundNode); ok {
				r.Set(student, day, "11", route)
			}
		default:
			nxt, ok := classes[strconv.Itoa(p-offset+1)]
			if !ok || !isTracked(nxt) {
				continue
			}
			key := strconv.Itoa(p)
			if nxt == cur {
				r.Set(student, day, key, "")
			} else if route, ok := sp.Route(cur, nxt); ok {
				r.Set(student, day, key, route)
			}
		}
	}
}

// expandLunchGap implements the senior-student lunch-return rule: students
// with an id below seniorCutoff return to the ground node for lunch (unless
// they're already there); everyone else has no movement at period 6.
func expandLunchGap(r routetable.Table, sp ShortestPaths, student, day, cur string, studentNum int, hasNum bool) {
	isSenior := hasNum && studentNum < seniorCutoff
	if isSenior && cur != groundNode {
		if route, ok := sp.Route(cur, groundNode); ok {
			r.Set(student, day, "6", route)
			return
		}
	}
	r.Set(student, day, "6", "")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
