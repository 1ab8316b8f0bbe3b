package endpoints

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Vantage-Outdoor-LLC/argus/internal/db"
	"github.com/Vantage-Outdoor-LLC/argus/internal/model"
	"github.com/Vantage-Outdoor-LLC/argus/internal/redis"
	"github.com/Vantage-Outdoor-LLC/argus/internal/scheduler"
)

const dateLayout = "2006-01-02"

// planning bundles the scheduler inputs materialized for one request: the
// group index, the display census and the booking store, all built from a
// fresh repository read.
type planning struct {
	index    *scheduler.GroupIndex
	census   scheduler.Census
	displays []model.Display
	store    *scheduler.Store
}

func loadPlanning(store db.Store) (*planning, error) {
	forest, err := store.LoadGroupForest()
	if err != nil {
		return nil, err
	}
	displays, err := store.ListDisplays()
	if err != nil {
		return nil, err
	}
	schedules, err := store.LoadSchedules()
	if err != nil {
		return nil, err
	}
	ix := scheduler.BuildGroupIndex(forest)
	return &planning{
		index:    ix,
		census:   scheduler.ComputeCensus(ix, displays),
		displays: displays,
		store:    scheduler.NewStore(schedules),
	}, nil
}

// pruneAndPersist runs the expiry prune and saves the store if it changed.
// Best-effort: a failed save is logged and the pruned in-memory view is used
// anyway, so a read never fails because maintenance could not be persisted.
func pruneAndPersist(store db.Store, p *planning, today time.Time) {
	if !p.store.PruneExpired(today) {
		return
	}
	if err := store.SaveSchedules(p.store.Snapshot()); err != nil {
		log.Error().Err(err).Msg("failed to persist pruned schedules")
	}
}

// withBookingLock serializes a read-modify-write cycle over the schedule
// ledgers. Without it two concurrent requests could both pass the
// feasibility check against a stale snapshot and jointly overbook a group.
// When no Redis client is configured (unit tests) the cycle runs unlocked.
func withBookingLock(ctx context.Context, fn func() error) error {
	if redis.Rdb == nil {
		return fn()
	}
	token := fmt.Sprintf("argus-%d", time.Now().UnixNano())
	if err := redis.AcquireBookingLock(ctx, token); err != nil {
		return err
	}
	defer redis.ReleaseBookingLock(ctx, token)
	return fn()
}

// displaysInGroups lists ids of displays directly attached to any of the
// given groups, for change notifications.
func displaysInGroups(displays []model.Display, groupIDs []string) []string {
	member := make(map[string]bool, len(groupIDs))
	for _, id := range groupIDs {
		member[id] = true
	}
	var out []string
	for _, d := range displays {
		if member[d.GroupID] {
			out = append(out, d.ID)
		}
	}
	return out
}

func parseDateOr(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return scheduler.CivilDay(fallback), nil
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", value)
	}
	return scheduler.CivilDay(d), nil
}

func tierSeconds(tier string) int {
	if tier == "10s" {
		return 10
	}
	return 5
}
