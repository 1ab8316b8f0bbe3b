package scheduler

import (
	"time"

	"github.com/Vantage-Outdoor-LLC/argus/internal/model"
)

// GroupAvailability reports, for one group, the free seconds left in each
// week of a candidate span after hypothetically adding the new booking's
// load.
type GroupAvailability struct {
	GroupID           string `json:"group_id"`
	FreeSecondsByWeek []int  `json:"free_seconds_by_week"`
}

// Slot is a feasible placement found by the search.
type Slot struct {
	Start    time.Time
	PerGroup []GroupAvailability
}

// usageByWeek sums, per week window of the candidate span, the full duration
// of every booking that overlaps the window at all. The accounting is
// deliberately not prorated: a booking that merely touches a window charges
// its entire per-loop duration against it. Conservative, never under-counts.
func usageByWeek(bookings []model.Booking, candidateStart time.Time, weeks int) []int {
	usage := make([]int, weeks)
	for _, b := range bookings {
		bStart := CivilDay(b.StartDate)
		bEnd := CivilDay(b.EndDate)
		for i := 0; i < weeks; i++ {
			weekStart := addDays(candidateStart, i*daysPerWeek)
			weekEnd := addDays(weekStart, daysPerWeek)
			if overlaps(bStart, bEnd, weekStart, weekEnd) {
				usage[i] += b.DurationSeconds
			}
		}
	}
	return usage
}

func fits(usage []int, durationSeconds int) bool {
	for _, u := range usage {
		if u+durationSeconds > WeeklyCapacitySeconds {
			return false
		}
	}
	return true
}

// FindEarliestStart scans candidate days from startFrom up to horizonDays
// ahead (inclusive) and returns the first day on which every targeted group
// has room for durationSeconds in all weeks of the span, together with each
// group's remaining free seconds per week. ok is false when no day within
// the horizon fits; that is an ordinary negative result, not an error.
//
// Day order is the only tie-break; the groups must all fit simultaneously
// and carry no preference order among themselves.
//
// A week count below 1 is treated as 1: with zero weeks there would be no
// window to check and every candidate would pass vacuously.
func FindEarliestStart(store *Store, groupIDs []string, durationSeconds, weeks int, startFrom time.Time, horizonDays int) (slot Slot, ok bool) {
	if weeks < 1 {
		weeks = 1
	}
	start := CivilDay(startFrom)
	for dayOffset := 0; dayOffset <= horizonDays; dayOffset++ {
		candidate := addDays(start, dayOffset)
		fitsAll := true
		for _, id := range groupIDs {
			if !fits(usageByWeek(store.Bookings(id), candidate, weeks), durationSeconds) {
				fitsAll = false
				break
			}
		}
		if !fitsAll {
			continue
		}
		perGroup := make([]GroupAvailability, 0, len(groupIDs))
		for _, id := range groupIDs {
			usage := usageByWeek(store.Bookings(id), candidate, weeks)
			free := make([]int, weeks)
			for i, u := range usage {
				free[i] = WeeklyCapacitySeconds - u - durationSeconds
			}
			perGroup = append(perGroup, GroupAvailability{GroupID: id, FreeSecondsByWeek: free})
		}
		return Slot{Start: candidate, PerGroup: perGroup}, true
	}
	return Slot{}, false
}
