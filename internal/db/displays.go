package db

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/Vantage-Outdoor-LLC/argus/internal/model"
)

func (s *pgStore) ListDisplays() ([]model.Display, error) {
	displays := []model.Display{}
	err := s.db.Select(&displays, `
		SELECT id, group_id, address, gps_coordinates, google_maps_link, photo_url,
		       installed_date, installer_id, installer_name, status, impressions,
		       created_by, created_at
		  FROM displays
		 ORDER BY id
	`)
	if err != nil {
		log.Error().Err(err).Msg("ListDisplays failed")
		return nil, err
	}
	return displays, nil
}

func (s *pgStore) GetDisplayByID(id string) (*model.Display, error) {
	var d model.Display
	err := s.db.Get(&d, `
		SELECT id, group_id, address, gps_coordinates, google_maps_link, photo_url,
		       installed_date, installer_id, installer_name, status, impressions,
		       created_by, created_at
		  FROM displays
		 WHERE id = $1
	`, id)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Error().Err(err).Str("display_id", id).Msg("GetDisplayByID failed")
		}
		return nil, err
	}
	return &d, nil
}

func (s *pgStore) CreateDisplay(d model.Display) error {
	_, err := s.db.Exec(`
		INSERT INTO displays
		  (id, group_id, address, gps_coordinates, google_maps_link, photo_url,
		   installed_date, installer_id, installer_name, status, impressions,
		   created_by, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,now())
	`, d.ID, d.GroupID, d.Address, d.GPSCoordinates, d.GoogleMapsLink, d.PhotoURL,
		d.InstalledDate, d.InstallerID, d.InstallerName, d.Status, d.Impressions,
		d.CreatedBy)
	if err != nil {
		log.Error().Err(err).Str("display_id", d.ID).Msg("CreateDisplay failed")
	}
	return err
}

func (s *pgStore) UpdateDisplay(d model.Display) error {
	res, err := s.db.Exec(`
		UPDATE displays
		   SET group_id = $1, address = $2, gps_coordinates = $3,
		       google_maps_link = $4, photo_url = $5, installed_date = $6,
		       installer_id = $7, installer_name = $8, status = $9,
		       impressions = $10
		 WHERE id = $11
	`, d.GroupID, d.Address, d.GPSCoordinates, d.GoogleMapsLink, d.PhotoURL,
		d.InstalledDate, d.InstallerID, d.InstallerName, d.Status, d.Impressions, d.ID)
	if err != nil {
		log.Error().Err(err).Str("display_id", d.ID).Msg("UpdateDisplay failed")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *pgStore) DeleteDisplay(id string) error {
	res, err := s.db.Exec(`DELETE FROM displays WHERE id = $1`, id)
	if err != nil {
		log.Error().Err(err).Str("display_id", id).Msg("DeleteDisplay failed")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UnassignDisplays clears the group assignment of every display attached to
// one of the given groups. Used when a group subtree is deleted. Returns the
// number of displays unassigned.
func (s *pgStore) UnassignDisplays(groupIDs []string) (int, error) {
	if len(groupIDs) == 0 {
		return 0, nil
	}
	res, err := s.db.Exec(`
		UPDATE displays SET group_id = '' WHERE group_id = ANY($1)
	`, pq.Array(groupIDs))
	if err != nil {
		log.Error().Err(err).Msg("UnassignDisplays failed")
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
