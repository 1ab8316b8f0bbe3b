package packets

import "github.com/Vantage-Outdoor-LLC/argus/internal/model"

// CampaignResponse is a campaign record enriched with its live fields;
// status and remaining days are derived from the clock on every read, never
// persisted.
type CampaignResponse struct {
	model.Campaign
	Status        string `json:"status"`
	RemainingDays int    `json:"remaining_days"`
}

// GroupSlotResponse reports one bearing group's availability. TotalDisplays
// is the group's own census count; counts of nested bearing groups overlap,
// so summing them across a response over-counts shared subtrees.
type GroupSlotResponse struct {
	GroupID           string `json:"group_id"`
	FreeSecondsByWeek []int  `json:"free_seconds_by_week"`
	HasDisplays       bool   `json:"has_displays"`
	TotalDisplays     int    `json:"total_displays"`
}

// AvailabilityResponse mirrors the slot probe's search inputs back alongside
// the result so clients can render the preview without re-deriving them.
type AvailabilityResponse struct {
	EarliestStartDate *string             `json:"earliest_start_date"`
	FitsNow           bool                `json:"fits_now"`
	SlotSeconds       int                 `json:"slot_seconds"`
	Weeks             int                 `json:"weeks"`
	DurationSeconds   int                 `json:"duration_seconds"`
	Groups            []GroupSlotResponse `json:"groups"`
	ExpandedGroupIDs  []string            `json:"expanded_group_ids"`
}

// DeleteGroupResponse reports what a subtree removal touched.
type DeleteGroupResponse struct {
	RemovedIDs []string `json:"removed_ids"`
	Reassigned int      `json:"reassigned"`
}
