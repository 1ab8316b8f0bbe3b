package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Vantage-Outdoor-LLC/argus/internal/model"
)

// The group forest is stored as one jsonb document, the same nested shape
// the dashboard edits. A relational encoding would force reassembling the
// tree on every read; the scheduler rebuilds its index from the flat
// document anyway.

func (s *pgStore) LoadGroupForest() ([]model.Group, error) {
	var doc []byte
	err := s.db.Get(&doc, `SELECT doc FROM group_forest WHERE id = 1`)
	if err == sql.ErrNoRows {
		return []model.Group{}, nil
	}
	if err != nil {
		log.Error().Err(err).Msg("LoadGroupForest failed")
		return nil, err
	}

	var forest []model.Group
	if err := json.Unmarshal(doc, &forest); err != nil {
		return nil, fmt.Errorf("decode group forest: %w", err)
	}
	return forest, nil
}

func (s *pgStore) SaveGroupForest(forest []model.Group) error {
	doc, err := json.Marshal(forest)
	if err != nil {
		return fmt.Errorf("encode group forest: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO group_forest (id, doc, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()
	`, doc)
	if err != nil {
		log.Error().Err(err).Msg("SaveGroupForest failed")
	}
	return err
}
