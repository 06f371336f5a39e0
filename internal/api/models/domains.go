package models

import "time"

// DomainRecord is a record attached to a user domain.
type DomainRecord struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	TTL     int    `json:"ttl"`
}

// UserDomain is a domain owned by the calling user.
type UserDomain struct {
	Name      string         `json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Records   []DomainRecord `json:"records"`
}

// DomainListResponse lists the caller's domains.
type DomainListResponse struct {
	Domains []UserDomain `json:"domains"`
	Count   int          `json:"count"`
}

// DomainCreateRequest claims a subdomain of the base domain.
type DomainCreateRequest struct {
	Subdomain string `json:"subdomain" binding:"required"`
}
