package models

// LookupRecord is one answer of the lookup protocol.
type LookupRecord struct {
	QType   string `json:"qtype"`
	QName   string `json:"qname"`
	Content string `json:"content"`
	TTL     int    `json:"ttl"`
}

// LookupResponse wraps lookup answers. Message is set on failures only.
type LookupResponse struct {
	Result  []LookupRecord `json:"result"`
	Message string         `json:"message,omitempty"`
}

// DomainInfo describes a zone to the authoritative nameserver.
type DomainInfo struct {
	ID             int      `json:"id"`
	Zone           string   `json:"zone"`
	Masters        []string `json:"masters"`
	NotifiedSerial int      `json:"notified_serial"`
	Serial         int      `json:"serial"`
	LastCheck      int64    `json:"last_check"`
	Kind           string   `json:"kind"`
}

// DomainInfoResponse wraps the zone listing.
type DomainInfoResponse struct {
	Result []DomainInfo `json:"result"`
}

// MetadataResponse carries domain metadata keyed by kind.
type MetadataResponse struct {
	Result map[string][]string `json:"result"`
}
