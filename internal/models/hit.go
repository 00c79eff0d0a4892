package models

import (
	"fmt"
	"strconv"
	"time"
)

// DropReason explains why a hit was excluded from aggregation. Dropped hits
// are logged with their reason and never produce an error.
type DropReason string

const (
	DropMissingGeolocation DropReason = "missing_geolocation"
	DropEmptyActionTarget  DropReason = "empty_action_target"
	DropNonArticle         DropReason = "non_article"
	DropContentTypeOther   DropReason = "content_type_other"
	DropUndefinedHitType   DropReason = "undefined_hit_type"
	DropMissingISSN        DropReason = "missing_issn"
	DropMissingPID         DropReason = "missing_pid"
)

// Markers standing in for a resource identity on hits that do not reference
// a specific item.
const (
	platformMarker = "platform"
	otherMarker    = "other"
)

// Hit is one classified, enriched access event. It is created once by the
// ingestion enricher, is immutable afterwards, and is consumed read-only by
// the deduplicator and the aggregator.
type Hit struct {
	IP             string    `json:"ip"`
	Latitude       *float64  `json:"latitude"`
	Longitude      *float64  `json:"longitude"`
	Timestamp      time.Time `json:"timestamp"`
	BrowserName    string    `json:"browserName"`
	BrowserVersion string    `json:"browserVersion"`
	ActionTarget   string    `json:"actionTarget"`

	Collection        string      `json:"collection"`
	PID               string      `json:"pid"`
	ISSN              string      `json:"issn"`
	ContentType       ContentType `json:"contentType"`
	HitType           HitType     `json:"hitType"`
	Format            Format      `json:"format"`
	Language          string      `json:"lang"`
	YearOfPublication string      `json:"yearOfPublication"`

	SessionID string `json:"sessionId"`
}

// SessionKey derives the approximate visitor-session key: same IP, same
// browser, same calendar hour. The log source carries no persistent visitor
// identity, so this is the closest available session notion. Month and day
// are deliberately unpadded; the key is an opaque grouping value, not a date.
func SessionKey(ip, browserName, browserVersion string, ts time.Time) string {
	return fmt.Sprintf("%s/%s/%s|%d-%d-%d|%d",
		ip, browserName, browserVersion,
		ts.Year(), int(ts.Month()), ts.Day(), ts.Hour())
}

// Day returns the hit's calendar date as YYYY-MM-DD.
func (h *Hit) Day() string {
	return h.Timestamp.Format("2006-01-02")
}

// IsValid is the first gate a hit must pass: an access with no geolocation is
// internal-network noise, and an access with no target cannot be classified.
func (h *Hit) IsValid() (bool, DropReason) {
	if h.Latitude == nil || h.Longitude == nil {
		return false, DropMissingGeolocation
	}
	if h.ActionTarget == "" {
		return false, DropEmptyActionTarget
	}
	return true, ""
}

// IsTrackable is the second gate: only hits whose identity was confidently
// resolved are counted. When includeNonArticle is false, everything that is
// not an article is excluded before the remaining rules run.
func (h *Hit) IsTrackable(includeNonArticle bool) (bool, DropReason) {
	if !includeNonArticle && h.HitType != HitTypeArticle {
		return false, DropNonArticle
	}
	if h.ContentType == ContentOther {
		return false, DropContentTypeOther
	}
	if h.HitType == HitTypeUndefined {
		return false, DropUndefinedHitType
	}
	switch h.HitType {
	case HitTypeArticle, HitTypeIssue, HitTypeJournal:
		if h.ISSN == "" {
			return false, DropMissingISSN
		}
	}
	if h.HitType == HitTypeArticle && h.PID == "" {
		return false, DropMissingPID
	}
	return true, ""
}

// ResourceKey is the aggregation identity of a hit: which resource it counts
// against, in which format, language and client location. It doubles as the
// deduplication bucket key (together with the session ID). Dimensions that do
// not apply to a hit type are left zero-valued.
type ResourceKey struct {
	Collection        string      `json:"collection"`
	HitType           HitType     `json:"hitType"`
	PID               string      `json:"pid"`
	ISSN              string      `json:"issn"`
	Format            Format      `json:"format,omitempty"`
	Language          string      `json:"lang,omitempty"`
	Latitude          string      `json:"latitude"`
	Longitude         string      `json:"longitude"`
	YearOfPublication string      `json:"yearOfPublication,omitempty"`
}

// ResourceKey projects the hit onto the dimensions that make two hits count
// as accesses to "the same thing" for its hit type.
func (h *Hit) ResourceKey() ResourceKey {
	key := ResourceKey{
		Collection: h.Collection,
		HitType:    h.HitType,
		Latitude:   formatCoordinate(h.Latitude),
		Longitude:  formatCoordinate(h.Longitude),
	}

	switch h.HitType {
	case HitTypeArticle:
		key.PID = h.PID
		key.Format = h.Format
		key.Language = h.Language
		key.YearOfPublication = h.YearOfPublication
	case HitTypeIssue:
		key.ISSN = h.ISSN
		key.PID = h.PID // issue code
	case HitTypeJournal:
		key.ISSN = h.ISSN
	case HitTypePlatform:
		key.PID = platformMarker
	default:
		key.PID = otherMarker
	}

	return key
}

func formatCoordinate(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
