package scheduler

import (
	"sort"
	"time"

	"github.com/Vantage-Outdoor-LLC/argus/internal/model"
)

// Store holds one booking ledger per group id. It is materialized from the
// schedule repository, mutated in memory, and handed back for persistence;
// the store itself never touches durable storage.
type Store struct {
	ledgers map[string][]model.Booking
}

// NewStore builds a store from persisted group schedules.
func NewStore(schedules []model.GroupSchedule) *Store {
	s := &Store{ledgers: make(map[string][]model.Booking)}
	for _, gs := range schedules {
		s.ledgers[gs.GroupID] = append(s.ledgers[gs.GroupID], gs.Bookings...)
	}
	return s
}

// Bookings returns the ledger of one group; nil if the group has none.
func (s *Store) Bookings(groupID string) []model.Booking {
	return s.ledgers[groupID]
}

// AddBooking appends to the group's ledger, creating it lazily.
func (s *Store) AddBooking(groupID string, b model.Booking) {
	s.ledgers[groupID] = append(s.ledgers[groupID], b)
}

// PruneExpired drops every booking whose end date is on or before the start
// of today, across all groups. Reports whether anything was removed.
// Idempotent for a fixed today.
func (s *Store) PruneExpired(today time.Time) bool {
	cutoff := CivilDay(today)
	changed := false
	for groupID, bookings := range s.ledgers {
		kept := bookings[:0]
		for _, b := range bookings {
			if CivilDay(b.EndDate).After(cutoff) {
				kept = append(kept, b)
			}
		}
		if len(kept) != len(bookings) {
			changed = true
		}
		s.ledgers[groupID] = kept
	}
	return changed
}

// RemoveByCampaign drops every booking of the campaign across all groups.
// Used before re-booking an edited campaign and on delete.
func (s *Store) RemoveByCampaign(campaignID string) bool {
	changed := false
	for groupID, bookings := range s.ledgers {
		kept := bookings[:0]
		for _, b := range bookings {
			if b.CampaignID != campaignID {
				kept = append(kept, b)
			}
		}
		if len(kept) != len(bookings) {
			changed = true
		}
		s.ledgers[groupID] = kept
	}
	return changed
}

// RemoveGroups drops the whole ledger of each given group id. Used when a
// group subtree is deleted.
func (s *Store) RemoveGroups(groupIDs []string) bool {
	changed := false
	for _, id := range groupIDs {
		if _, ok := s.ledgers[id]; ok {
			delete(s.ledgers, id)
			changed = true
		}
	}
	return changed
}

// Snapshot materializes the store for persistence, groups sorted by id so
// the saved document is stable. Empty ledgers are kept; a group that once
// carried bookings keeps its entry.
func (s *Store) Snapshot() []model.GroupSchedule {
	ids := make([]string, 0, len(s.ledgers))
	for id := range s.ledgers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]model.GroupSchedule, 0, len(ids))
	for _, id := range ids {
		bookings := append([]model.Booking{}, s.ledgers[id]...)
		out = append(out, model.GroupSchedule{GroupID: id, Bookings: bookings})
	}
	return out
}
