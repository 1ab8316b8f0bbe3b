package packets

type CreateDisplayRequest struct {
	GroupID        string  `json:"group_id"`
	Address        *string `json:"address"`
	GPSCoordinates *string `json:"gps_coordinates"`
	GoogleMapsLink *string `json:"google_maps_link"`
	PhotoURL       *string `json:"photo_url"`
	InstalledDate  string  `json:"installed_date"` // YYYY-MM-DD, defaults to today
	InstallerID    *string `json:"installer_id"`
	InstallerName  *string `json:"installer_name"`
	Status         string  `json:"status"`
	Impressions    *int    `json:"impressions"`
	CreatedBy      string  `json:"created_by"`
}

type UpdateDisplayRequest struct {
	GroupID        *string `json:"group_id"`
	Address        *string `json:"address"`
	GPSCoordinates *string `json:"gps_coordinates"`
	GoogleMapsLink *string `json:"google_maps_link"`
	PhotoURL       *string `json:"photo_url"`
	InstallerID    *string `json:"installer_id"`
	InstallerName  *string `json:"installer_name"`
	Status         *string `json:"status"`
	Impressions    *int    `json:"impressions"`
}

type CreateCampaignRequest struct {
	Name         string   `json:"name" binding:"required"`
	CompanyName  *string  `json:"company_name"`
	ContactNo    *string  `json:"contact_no"`
	MediaURL     *string  `json:"media_url"`
	MediaType    *string  `json:"media_type"`
	DurationTier string   `json:"duration_tier"` // "5s" or "10s", defaults to "5s"
	Weeks        int      `json:"weeks"`
	GroupIDs     []string `json:"group_ids" binding:"required,min=1"`
	StartDate    string   `json:"start_date"` // YYYY-MM-DD, defaults to today
	CustomPrice  *float64 `json:"custom_price"`
	CreatedBy    string   `json:"created_by"`
}

type UpdateCampaignRequest struct {
	Name         *string  `json:"name"`
	CompanyName  *string  `json:"company_name"`
	ContactNo    *string  `json:"contact_no"`
	MediaURL     *string  `json:"media_url"`
	MediaType    *string  `json:"media_type"`
	DurationTier *string  `json:"duration_tier"`
	Weeks        *int     `json:"weeks"`
	GroupIDs     []string `json:"group_ids"`
	StartDate    *string  `json:"start_date"`
	CustomPrice  *float64 `json:"custom_price"`
}

type AvailabilityRequest struct {
	GroupIDs        []string `json:"group_ids" binding:"required,min=1"`
	DurationSeconds int      `json:"duration_seconds" binding:"required,gt=0"`
	Weeks           int      `json:"weeks"`
	StartFrom       string   `json:"start_from"` // YYYY-MM-DD, defaults to today
}
