package model

import "time"

// Display is a physical installed display. GroupID is empty while the
// display is unassigned; an assigned display counts toward its group and
// every ancestor of that group.
type Display struct {
	ID             string    `db:"id" json:"id"`
	GroupID        string    `db:"group_id" json:"group_id"`
	Address        *string   `db:"address" json:"address"`
	GPSCoordinates *string   `db:"gps_coordinates" json:"gps_coordinates"`
	GoogleMapsLink *string   `db:"google_maps_link" json:"google_maps_link"`
	PhotoURL       *string   `db:"photo_url" json:"photo_url"`
	InstalledDate  time.Time `db:"installed_date" json:"installed_date"`
	InstallerID    *string   `db:"installer_id" json:"installer_id"`
	InstallerName  *string   `db:"installer_name" json:"installer_name"`
	Status         string    `db:"status" json:"status"`
	Impressions    int       `db:"impressions" json:"impressions"`
	CreatedBy      string    `db:"created_by" json:"created_by"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
