package db

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Vantage-Outdoor-LLC/argus/internal/model"
)

type scheduleRow struct {
	GroupID  string `db:"group_id"`
	Bookings []byte `db:"bookings"`
}

func (s *pgStore) LoadSchedules() ([]model.GroupSchedule, error) {
	rows := []scheduleRow{}
	err := s.db.Select(&rows, `SELECT group_id, bookings FROM group_schedules ORDER BY group_id`)
	if err != nil {
		log.Error().Err(err).Msg("LoadSchedules failed")
		return nil, err
	}
	out := make([]model.GroupSchedule, 0, len(rows))
	for _, r := range rows {
		gs := model.GroupSchedule{GroupID: r.GroupID}
		if len(r.Bookings) > 0 {
			if err := json.Unmarshal(r.Bookings, &gs.Bookings); err != nil {
				return nil, fmt.Errorf("decode bookings of %s: %w", r.GroupID, err)
			}
		}
		out = append(out, gs)
	}
	return out, nil
}

// SaveSchedules replaces the persisted ledgers with the given snapshot in
// one transaction. The whole store is written back on every mutation; the
// ledgers are small and the single-writer lock already serializes callers.
func (s *pgStore) SaveSchedules(schedules []model.GroupSchedule) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM group_schedules`); err != nil {
		log.Error().Err(err).Msg("SaveSchedules clear failed")
		return err
	}
	for _, gs := range schedules {
		if gs.Bookings == nil {
			gs.Bookings = []model.Booking{}
		}
		bookings, err := json.Marshal(gs.Bookings)
		if err != nil {
			return fmt.Errorf("encode bookings of %s: %w", gs.GroupID, err)
		}
		if _, err := tx.Exec(`
			INSERT INTO group_schedules (group_id, bookings, updated_at)
			VALUES ($1, $2, now())
		`, gs.GroupID, bookings); err != nil {
			log.Error().Err(err).Str("group_id", gs.GroupID).Msg("SaveSchedules failed")
			return err
		}
	}
	return tx.Commit()
}
