package model

import "time"

// Campaign statuses derived from the clock and the queued flag. Never
// persisted; recomputed on every read.
const (
	CampaignQueued    = "queued"
	CampaignPaused    = "paused"
	CampaignActive    = "active"
	CampaignCompleted = "completed"
)

// Placement is the agreed reservation of a campaign against one bearing
// group. All placements of a campaign share the same dates and duration.
type Placement struct {
	GroupID         string    `json:"group_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	DurationSeconds int       `json:"duration_seconds"`
}

// Campaign is an advertising campaign booked across a set of display groups.
// StartDate/EndDate are nil while the campaign is queued.
type Campaign struct {
	ID              string      `db:"id" json:"id"`
	Name            string      `db:"name" json:"name"`
	CompanyName     *string     `db:"company_name" json:"company_name"`
	ContactNo       *string     `db:"contact_no" json:"contact_no"`
	MediaURL        *string     `db:"media_url" json:"media_url"`
	MediaType       *string     `db:"media_type" json:"media_type"`
	DurationTier    string      `db:"duration_tier" json:"duration_tier"`
	DurationSeconds int         `db:"duration_seconds" json:"duration_seconds"`
	Weeks           int         `db:"weeks" json:"weeks"`
	StartDate       *time.Time  `db:"start_date" json:"start_date"`
	EndDate         *time.Time  `db:"end_date" json:"end_date"`
	RequestedGroups []string    `json:"requested_groups"`
	Placements      []Placement `json:"placements"`
	Queued          bool        `db:"queued" json:"queued"`
	CalculatedPrice float64     `db:"calculated_price" json:"calculated_price"`
	CustomPrice     *float64    `db:"custom_price" json:"custom_price"`
	FinalPrice      float64     `db:"final_price" json:"final_price"`
	Discount        float64     `db:"discount" json:"discount"`
	DiscountPercent float64     `db:"discount_percent" json:"discount_percent"`
	CreatedBy       string      `db:"created_by" json:"created_by"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
}

// Status derives the campaign's live state at the given instant.
func (c *Campaign) Status(now time.Time) string {
	if c.Queued || c.StartDate == nil || c.EndDate == nil {
		return CampaignQueued
	}
	if now.Before(*c.StartDate) {
		return CampaignPaused
	}
	if now.After(*c.EndDate) {
		return CampaignCompleted
	}
	return CampaignActive
}

// RemainingDays reports whole days left until EndDate, counted from
// StartDate while the campaign has not begun yet. Zero once finished or
// while queued.
func (c *Campaign) RemainingDays(now time.Time) int {
	if c.StartDate == nil || c.EndDate == nil {
		return 0
	}
	anchor := now
	if now.Before(*c.StartDate) {
		anchor = *c.StartDate
	}
	diff := c.EndDate.Sub(anchor)
	days := int((diff + 24*time.Hour - time.Nanosecond) / (24 * time.Hour))
	if days < 0 {
		return 0
	}
	return days
}
