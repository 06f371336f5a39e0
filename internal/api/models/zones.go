package models

import "time"

// ZoneSummary describes one zone of the directory.
type ZoneSummary struct {
	Name        string    `json:"name"`
	Base        bool      `json:"base"`
	Nameservers []string  `json:"nameservers,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// ZoneListResponse contains a list of zones.
type ZoneListResponse struct {
	Zones []ZoneSummary `json:"zones"`
	Count int           `json:"count"`
}

// ZoneCreateRequest sets up the base domain or adds an additional zone.
type ZoneCreateRequest struct {
	Domain      string   `json:"domain" binding:"required"`
	Nameservers []string `json:"nameservers" binding:"required,min=1,max=6"`
}

// DeleteZoneEnabled carries the additional-zone deletion flag.
type DeleteZoneEnabled struct {
	Enabled *bool `json:"enabled" binding:"required"`
}
