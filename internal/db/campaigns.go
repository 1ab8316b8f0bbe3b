package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Vantage-Outdoor-LLC/argus/internal/model"
)

type campaignRow struct {
	ID              string     `db:"id"`
	Name            string     `db:"name"`
	CompanyName     *string    `db:"company_name"`
	ContactNo       *string    `db:"contact_no"`
	MediaURL        *string    `db:"media_url"`
	MediaType       *string    `db:"media_type"`
	DurationTier    string     `db:"duration_tier"`
	DurationSeconds int        `db:"duration_seconds"`
	Weeks           int        `db:"weeks"`
	StartDate       *time.Time `db:"start_date"`
	EndDate         *time.Time `db:"end_date"`
	RequestedGroups []byte     `db:"requested_groups"`
	Placements      []byte     `db:"placements"`
	Queued          bool       `db:"queued"`
	CalculatedPrice float64    `db:"calculated_price"`
	CustomPrice     *float64   `db:"custom_price"`
	FinalPrice      float64    `db:"final_price"`
	Discount        float64    `db:"discount"`
	DiscountPercent float64    `db:"discount_percent"`
	CreatedBy       string     `db:"created_by"`
	CreatedAt       time.Time  `db:"created_at"`
}

const campaignColumns = `
	id, name, company_name, contact_no, media_url, media_type,
	duration_tier, duration_seconds, weeks, start_date, end_date,
	requested_groups, placements, queued,
	calculated_price, custom_price, final_price, discount, discount_percent,
	created_by, created_at`

func (r campaignRow) toModel() (model.Campaign, error) {
	c := model.Campaign{
		ID:              r.ID,
		Name:            r.Name,
		CompanyName:     r.CompanyName,
		ContactNo:       r.ContactNo,
		MediaURL:        r.MediaURL,
		MediaType:       r.MediaType,
		DurationTier:    r.DurationTier,
		DurationSeconds: r.DurationSeconds,
		Weeks:           r.Weeks,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		Queued:          r.Queued,
		CalculatedPrice: r.CalculatedPrice,
		CustomPrice:     r.CustomPrice,
		FinalPrice:      r.FinalPrice,
		Discount:        r.Discount,
		DiscountPercent: r.DiscountPercent,
		CreatedBy:       r.CreatedBy,
		CreatedAt:       r.CreatedAt,
	}
	if len(r.RequestedGroups) > 0 {
		if err := json.Unmarshal(r.RequestedGroups, &c.RequestedGroups); err != nil {
			return c, fmt.Errorf("decode requested_groups of %s: %w", r.ID, err)
		}
	}
	if len(r.Placements) > 0 {
		if err := json.Unmarshal(r.Placements, &c.Placements); err != nil {
			return c, fmt.Errorf("decode placements of %s: %w", r.ID, err)
		}
	}
	return c, nil
}

func campaignArgs(c model.Campaign) (requestedGroups, placements []byte, err error) {
	if c.RequestedGroups == nil {
		c.RequestedGroups = []string{}
	}
	if c.Placements == nil {
		c.Placements = []model.Placement{}
	}
	requestedGroups, err = json.Marshal(c.RequestedGroups)
	if err != nil {
		return nil, nil, fmt.Errorf("encode requested_groups: %w", err)
	}
	placements, err = json.Marshal(c.Placements)
	if err != nil {
		return nil, nil, fmt.Errorf("encode placements: %w", err)
	}
	return requestedGroups, placements, nil
}

func (s *pgStore) ListCampaigns() ([]model.Campaign, error) {
	rows := []campaignRow{}
	err := s.db.Select(&rows, `SELECT `+campaignColumns+` FROM campaigns ORDER BY created_at, id`)
	if err != nil {
		log.Error().Err(err).Msg("ListCampaigns failed")
		return nil, err
	}
	out := make([]model.Campaign, 0, len(rows))
	for _, r := range rows {
		c, err := r.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *pgStore) GetCampaignByID(id string) (*model.Campaign, error) {
	var r campaignRow
	err := s.db.Get(&r, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Error().Err(err).Str("campaign_id", id).Msg("GetCampaignByID failed")
		}
		return nil, err
	}
	c, err := r.toModel()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *pgStore) CreateCampaign(c model.Campaign) error {
	groups, placements, err := campaignArgs(c)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO campaigns (`+campaignColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,now())
	`, c.ID, c.Name, c.CompanyName, c.ContactNo, c.MediaURL, c.MediaType,
		c.DurationTier, c.DurationSeconds, c.Weeks, c.StartDate, c.EndDate,
		groups, placements, c.Queued,
		c.CalculatedPrice, c.CustomPrice, c.FinalPrice, c.Discount, c.DiscountPercent,
		c.CreatedBy)
	if err != nil {
		log.Error().Err(err).Str("campaign_id", c.ID).Msg("CreateCampaign failed")
	}
	return err
}

func (s *pgStore) UpdateCampaign(c model.Campaign) error {
	groups, placements, err := campaignArgs(c)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`
		UPDATE campaigns
		   SET name = $1, company_name = $2, contact_no = $3,
		       media_url = $4, media_type = $5,
		       duration_tier = $6, duration_seconds = $7, weeks = $8,
		       start_date = $9, end_date = $10,
		       requested_groups = $11, placements = $12, queued = $13,
		       calculated_price = $14, custom_price = $15, final_price = $16,
		       discount = $17, discount_percent = $18
		 WHERE id = $19
	`, c.Name, c.CompanyName, c.ContactNo, c.MediaURL, c.MediaType,
		c.DurationTier, c.DurationSeconds, c.Weeks,
		c.StartDate, c.EndDate,
		groups, placements, c.Queued,
		c.CalculatedPrice, c.CustomPrice, c.FinalPrice, c.Discount, c.DiscountPercent,
		c.ID)
	if err != nil {
		log.Error().Err(err).Str("campaign_id", c.ID).Msg("UpdateCampaign failed")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SaveCampaigns persists scheduler-owned fields of the given campaigns in
// one transaction. Used after a reconciliation pass promotes queued
// campaigns.
func (s *pgStore) SaveCampaigns(campaigns []model.Campaign) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, c := range campaigns {
		groups, placements, err := campaignArgs(c)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`
			UPDATE campaigns
			   SET start_date = $1, end_date = $2,
			       requested_groups = $3, placements = $4, queued = $5
			 WHERE id = $6
		`, c.StartDate, c.EndDate, groups, placements, c.Queued, c.ID); err != nil {
			log.Error().Err(err).Str("campaign_id", c.ID).Msg("SaveCampaigns failed")
			return err
		}
	}
	return tx.Commit()
}

func (s *pgStore) DeleteCampaign(id string) error {
	res, err := s.db.Exec(`DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		log.Error().Err(err).Str("campaign_id", id).Msg("DeleteCampaign failed")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
