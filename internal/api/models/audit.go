package models

import "time"

// AdminLogEntry is one audited administrator action.
type AdminLogEntry struct {
	ID             int64     `json:"id"`
	AdminUsername  string    `json:"admin_username"`
	Action         string    `json:"action"`
	TargetUsername string    `json:"target_username,omitempty"`
	Details        string    `json:"details,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// AdminLogResponse lists recent audit entries, newest first.
type AdminLogResponse struct {
	Entries []AdminLogEntry `json:"entries"`
	Count   int             `json:"count"`
}
