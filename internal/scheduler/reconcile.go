package scheduler

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Vantage-Outdoor-LLC/argus/internal/model"
)

// ReconcileResult reports what a reconciliation pass changed. The caller
// persists the store when StoreChanged and the campaign list when
// CampaignsChanged; persistence failures there are best-effort and must not
// fail the read that triggered the pass.
type ReconcileResult struct {
	Campaigns        []model.Campaign
	StoreChanged     bool
	CampaignsChanged bool
}

// ReconcileQueued runs the per-read maintenance pass: prune bookings that
// ended before today, then retry every queued campaign against the freed
// capacity, promoting those that now fit. Campaigns are retried in the order
// given, greedily against the state left by earlier promotions in the same
// pass; there is no priority weighting.
func ReconcileQueued(store *Store, campaigns []model.Campaign, today time.Time) ReconcileResult {
	res := ReconcileResult{Campaigns: campaigns}
	res.StoreChanged = store.PruneExpired(today)

	for i := range campaigns {
		c := &campaigns[i]
		if !c.Queued || len(c.RequestedGroups) == 0 {
			continue
		}
		booked := BookEarliest(store, c.ID, c.RequestedGroups, c.DurationSeconds, c.Weeks, today)
		if !booked.Booked {
			continue
		}
		start := booked.StartDate
		end := booked.EndDate
		c.Queued = false
		c.StartDate = &start
		c.EndDate = &end
		c.Placements = booked.Placements(c.RequestedGroups, c.DurationSeconds)
		res.StoreChanged = true
		res.CampaignsChanged = true
		log.Info().
			Str("campaign_id", c.ID).
			Time("start_date", start).
			Int("groups", len(c.RequestedGroups)).
			Msg("queued campaign promoted")
	}
	return res
}
