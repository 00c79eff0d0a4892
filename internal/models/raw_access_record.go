package models

import "time"

// RawAccessRecord is one access event exactly as the log source reported it,
// before any identity resolution. Latitude/Longitude are nil when the source
// could not geolocate the client IP; such accesses are treated as
// internal-network noise and never counted.
//
// UserAgent is the raw header value; BrowserName and BrowserVersion are
// filled in during enrichment and are empty on freshly parsed records.
type RawAccessRecord struct {
	IP             string    `json:"ip"`
	Latitude       *float64  `json:"latitude"`
	Longitude      *float64  `json:"longitude"`
	Timestamp      time.Time `json:"timestamp"`
	UserAgent      string    `json:"userAgent"`
	BrowserName    string    `json:"browserName,omitempty"`
	BrowserVersion string    `json:"browserVersion,omitempty"`
	ActionTarget   string    `json:"actionTarget"`
	Host           string    `json:"host"`
	Era            SiteEra   `json:"era"`
}

// AccessBatch is an ingested group of raw access records for one collection.
type AccessBatch struct {
	BatchID    string             `json:"batchId"`
	Collection string             `json:"collection"`
	Records    []*RawAccessRecord `json:"records"`
}
