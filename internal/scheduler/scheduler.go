// Package scheduler decides whether and when a campaign can be placed on a
// set of display groups. Every display loops a fixed playlist, so each group
// has a finite budget of playback seconds per 7-day window; a booking
// consumes part of that budget for the campaign's span.
//
// All operations here are synchronous, in-memory computations over a Store
// snapshot. The caller must serialize read-modify-write cycles against a
// given store (see the booking lock in internal/redis): two uncoordinated
// commits can both pass the feasibility check against a stale snapshot and
// jointly overbook a group.
package scheduler

import (
	"errors"
	"time"
)

const (
	// WeeklyCapacitySeconds is the playback loop budget of a single group
	// over any 7-day booking window.
	WeeklyCapacitySeconds = 60

	// DefaultHorizonDays bounds how far ahead the feasibility search scans
	// before declaring a request infeasible.
	DefaultHorizonDays = 365

	daysPerWeek = 7
)

var (
	// ErrUnknownGroup marks a selection referencing a group id absent from
	// the current index.
	ErrUnknownGroup = errors.New("unknown group")

	// ErrNoDisplaysInSelection marks a selection whose expansion produced
	// no display-bearing groups.
	ErrNoDisplaysInSelection = errors.New("no displays in selected groups")
)

// CivilDay truncates t to its calendar day in UTC. All booking arithmetic
// happens at this granularity; time-of-day never participates.
func CivilDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func addDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// overlaps is the half-open interval test shared by the usage sums and the
// prune logic: [startA, endA) against [startB, endB).
func overlaps(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && endA.After(startB)
}
