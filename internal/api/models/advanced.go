package models

// AdvancedAddRequest stores or replaces an advanced record set.
type AdvancedAddRequest struct {
	Zone       string `json:"zone" binding:"required"`
	Name       string `json:"name" binding:"required"`
	RecordType string `json:"record_type" binding:"required"`
	TTL        int    `json:"ttl"`
	Content    string `json:"content" binding:"required"`
}

// AdvancedDeleteRequest selects advanced records to delete. Content and
// IDs narrow the selection when present.
type AdvancedDeleteRequest struct {
	Zone    string  `json:"zone" binding:"required"`
	Name    string  `json:"name" binding:"required"`
	Type    string  `json:"type" binding:"required"`
	TTL     int     `json:"ttl"`
	Content string  `json:"content,omitempty"`
	IDs     []int64 `json:"ids,omitempty"`
}

// AdvancedRecord is one stored advanced record.
type AdvancedRecord struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Content string `json:"content"`
	TTL     int    `json:"ttl"`
}

// AdvancedListResponse lists the advanced records of a zone.
type AdvancedListResponse struct {
	Zone    string           `json:"zone"`
	Records []AdvancedRecord `json:"records"`
	Count   int              `json:"count"`
}
