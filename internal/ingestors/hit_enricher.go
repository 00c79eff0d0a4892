package ingestors

import (
	"strings"

	"usage-counter/internal/models"
	"usage-counter/internal/resolvers"

	"github.com/mileusna/useragent"
)

//go:generate mockgen -source=hit_enricher.go -destination=./mocks/hit_enricher_mock.go -package=mocks
type HitEnricher interface {
	// Enrich classifies every record of the batch into a Hit. Enrichment is
	// total: unresolvable records become hits that the counting gates drop
	// later, never errors.
	Enrich(batch *models.AccessBatch) []*models.Hit
}

type hitEnricher struct {
	resolverSet *resolvers.Set
}

func NewHitEnricher(resolverSet *resolvers.Set) HitEnricher {
	return &hitEnricher{resolverSet: resolverSet}
}

func (e *hitEnricher) Enrich(batch *models.AccessBatch) []*models.Hit {
	hits := make([]*models.Hit, 0, len(batch.Records))
	for _, record := range batch.Records {
		hits = append(hits, e.enrichRecord(record))
	}
	return hits
}

func (e *hitEnricher) enrichRecord(record *models.RawAccessRecord) *models.Hit {
	record.BrowserName, record.BrowserVersion = parseBrowser(record.UserAgent)

	resolution := e.resolverSet.ForEra(record.Era).Resolve(record)
	metricRecordsEnrichedTotal.WithLabelValues(string(record.Era)).Inc()

	return &models.Hit{
		IP:             record.IP,
		Latitude:       record.Latitude,
		Longitude:      record.Longitude,
		Timestamp:      record.Timestamp,
		BrowserName:    record.BrowserName,
		BrowserVersion: record.BrowserVersion,
		ActionTarget:   record.ActionTarget,

		Collection:        resolution.Collection,
		PID:               resolution.PID,
		ISSN:              resolution.ISSN,
		ContentType:       resolution.ContentType,
		HitType:           resolution.HitType,
		Format:            resolution.Format,
		Language:          resolution.Language,
		YearOfPublication: resolution.YearOfPublication,

		SessionID: models.SessionKey(record.IP, record.BrowserName, record.BrowserVersion, record.Timestamp),
	}
}

// parseBrowser extracts a lowercased browser family and version from the raw
// user-agent header. Session keys are case-insensitive on browser identity;
// an unparseable user agent yields empty components rather than failing.
func parseBrowser(rawUserAgent string) (name, version string) {
	parsed := useragent.Parse(rawUserAgent)
	return strings.ToLower(parsed.Name), strings.ToLower(parsed.Version)
}
