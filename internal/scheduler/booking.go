package scheduler

import (
	"time"

	"github.com/Vantage-Outdoor-LLC/argus/internal/model"
)

// BookingResult is the outcome of a booking attempt. When Booked is false
// the store was not touched and PerGroup is empty; the caller decides
// between a hard rejection and queueing the campaign.
type BookingResult struct {
	Booked    bool
	StartDate time.Time
	EndDate   time.Time
	PerGroup  []GroupAvailability
}

// BookEarliest finds the earliest feasible start for the campaign and, on
// success, commits one booking per targeted group with identical dates and
// duration. Feasibility is checked jointly over all groups first, so the
// multi-group append is all-or-nothing.
func BookEarliest(store *Store, campaignID string, groupIDs []string, durationSeconds, weeks int, startFrom time.Time) BookingResult {
	// same clamp as the search, so the committed span is never zero-length
	if weeks < 1 {
		weeks = 1
	}
	slot, ok := FindEarliestStart(store, groupIDs, durationSeconds, weeks, startFrom, DefaultHorizonDays)
	if !ok {
		return BookingResult{}
	}
	end := addDays(slot.Start, weeks*daysPerWeek)
	booking := model.Booking{
		CampaignID:      campaignID,
		StartDate:       slot.Start,
		EndDate:         end,
		DurationSeconds: durationSeconds,
	}
	for _, id := range groupIDs {
		store.AddBooking(id, booking)
	}
	return BookingResult{Booked: true, StartDate: slot.Start, EndDate: end, PerGroup: slot.PerGroup}
}

// Availability runs the same search as BookEarliest without committing.
// Clients use it to preview feasibility before submitting.
func Availability(store *Store, groupIDs []string, durationSeconds, weeks int, startFrom time.Time) (Slot, bool) {
	return FindEarliestStart(store, groupIDs, durationSeconds, weeks, startFrom, DefaultHorizonDays)
}

// Placements builds the per-group placement records of a committed result.
func (r BookingResult) Placements(groupIDs []string, durationSeconds int) []model.Placement {
	out := make([]model.Placement, 0, len(groupIDs))
	for _, id := range groupIDs {
		out = append(out, model.Placement{
			GroupID:         id,
			StartDate:       r.StartDate,
			EndDate:         r.EndDate,
			DurationSeconds: durationSeconds,
		})
	}
	return out
}
