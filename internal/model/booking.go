package model

import "time"

// Booking is one committed reservation of weekly loop time on a single group.
// StartDate is inclusive and EndDate exclusive, both at civil-day
// granularity. A campaign spanning several groups has one Booking per group,
// all with identical dates and duration. Bookings are immutable; an edit is
// modeled as removal plus re-creation.
type Booking struct {
	CampaignID      string    `json:"campaign_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	DurationSeconds int       `json:"duration_seconds"`
}

// GroupSchedule is the booking ledger of one group.
type GroupSchedule struct {
	GroupID  string    `json:"group_id"`
	Bookings []Booking `json:"bookings"`
}
