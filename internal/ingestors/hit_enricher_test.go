package ingestors

import (
	"testing"
	"time"

	"usage-counter/internal/dictionaries"
	"usage-counter/internal/models"
	"usage-counter/internal/resolvers"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

func enricherTables() *dictionaries.Tables {
	return dictionaries.New(dictionaries.TableData{
		Acronyms: map[string]map[string]string{
			"scl": {"ab": "0100-1965"},
		},
		Languages: map[string]map[string]dictionaries.LanguageEntry{
			"scl": {
				"S0100-19651997000200001": {
					Default: "pt",
					ByFormat: map[models.Format][]string{
						models.FormatHTML: {"pt", "en"},
					},
				},
			},
		},
		Dates: map[string]map[string]dictionaries.DatesEntry{
			"scl": {"S0100-19651997000200001": {PublicationYear: "1997"}},
		},
		Domains: map[string]string{"www.scielo.br": "scl"},
	}, "scl")
}

func testEnricher() HitEnricher {
	return NewHitEnricher(resolvers.NewSet(enricherTables(), zerolog.Nop()))
}

func lat(v float64) *float64 { return &v }

func TestHitEnricher_ClassifiesClassicRecord(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)
	batch := &models.AccessBatch{
		BatchID:    "batch-123",
		Collection: "scl",
		Records: []*models.RawAccessRecord{
			{
				IP:           "187.10.0.1",
				Latitude:     lat(-23.55),
				Longitude:    lat(-46.63),
				Timestamp:    ts,
				UserAgent:    chromeUA,
				ActionTarget: "/scielo.php?script=sci_arttext&pid=S0100-19651997000200001&tlng=en",
				Host:         "www.scielo.br",
				Era:          models.EraClassic,
			},
		},
	}

	hits := testEnricher().Enrich(batch)
	require.Len(t, hits, 1)

	hit := hits[0]
	assert.Equal(t, "scl", hit.Collection)
	assert.Equal(t, "S0100-19651997000200001", hit.PID)
	assert.Equal(t, "0100-1965", hit.ISSN)
	assert.Equal(t, models.HitTypeArticle, hit.HitType)
	assert.Equal(t, models.ContentFullText, hit.ContentType)
	assert.Equal(t, "en", hit.Language)
	assert.Equal(t, "1997", hit.YearOfPublication)

	assert.Equal(t, "chrome", hit.BrowserName)
	assert.Equal(t, "124.0.0.0", hit.BrowserVersion)
	assert.Equal(t, "187.10.0.1/chrome/124.0.0.0|2024-5-10|14", hit.SessionID)
}

func TestHitEnricher_EraSelectsResolver(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)
	batch := &models.AccessBatch{
		BatchID:    "batch-123",
		Collection: "scl",
		Records: []*models.RawAccessRecord{
			{
				IP:           "187.10.0.1",
				Timestamp:    ts,
				UserAgent:    chromeUA,
				ActionTarget: "/j/ab/a/S0100-19651997000200001/",
				Host:         "www.scielo.br",
				Era:          models.EraNew,
			},
			{
				IP:           "187.10.0.1",
				Timestamp:    ts,
				UserAgent:    chromeUA,
				ActionTarget: "/index.php/scielo/preprint/view/5441",
				Host:         "www.scielo.br",
				Era:          models.EraPreprint,
			},
		},
	}

	hits := testEnricher().Enrich(batch)
	require.Len(t, hits, 2)
	assert.Equal(t, "S0100-19651997000200001", hits[0].PID)
	assert.Equal(t, "5441", hits[1].PID)
	assert.Equal(t, resolvers.PreprintISSN, hits[1].ISSN)
}

func TestHitEnricher_UnresolvableRecordYieldsDroppableHit(t *testing.T) {
	t.Parallel()

	batch := &models.AccessBatch{
		BatchID:    "batch-123",
		Collection: "scl",
		Records: []*models.RawAccessRecord{
			{
				IP:        "187.10.0.1",
				Timestamp: time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC),
				UserAgent: "definitely-not-a-browser",
				Host:      "www.scielo.br",
				Era:       models.EraClassic,
			},
		},
	}

	hits := testEnricher().Enrich(batch)
	require.Len(t, hits, 1)

	// Enrichment never fails a record; the gates reject it downstream.
	ok, reason := hits[0].IsValid()
	assert.False(t, ok)
	assert.Equal(t, models.DropMissingGeolocation, reason)
}
