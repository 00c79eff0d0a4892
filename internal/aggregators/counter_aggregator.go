package aggregators

import (
	"usage-counter/internal/models"
)

//go:generate mockgen -source=counter_aggregator.go -destination=./mocks/counter_aggregator_mock.go -package=mocks
type CounterAggregator interface {
	// Aggregate computes usage metrics from deduplicated hits.
	Aggregate(hits []*models.Hit) *models.MetricStore
}

type counterAggregator struct{}

func NewCounterAggregator() CounterAggregator {
	return &counterAggregator{}
}

// uniquePair identifies one claim on a unique counter: the same session
// accessing the same resource through the same content type on the same day
// counts once, however many surviving hits it produced.
type uniquePair struct {
	key         models.ResourceKey
	day         string
	sessionID   string
	contentType models.ContentType
}

// Aggregate counts every hit as an Item Investigation and hits whose content
// type delivers the item as Item Requests. The unique counters count
// distinct (session, content type) pairs per resource and day instead of raw
// hits. Hits must already be validated and deduplicated.
func (a *counterAggregator) Aggregate(hits []*models.Hit) *models.MetricStore {
	store := models.NewMetricStore()
	seenInvestigations := make(map[uniquePair]struct{})
	seenRequests := make(map[uniquePair]struct{})

	for _, hit := range hits {
		pair := uniquePair{
			key:         hit.ResourceKey(),
			day:         hit.Day(),
			sessionID:   hit.SessionID,
			contentType: hit.ContentType,
		}
		bucket := store.Bucket(pair.key, pair.day)
		metricHitsCountedTotal.WithLabelValues(hit.Collection, hit.HitType.String()).Inc()

		bucket.TotalItemInvestigations++
		if _, seen := seenInvestigations[pair]; !seen {
			seenInvestigations[pair] = struct{}{}
			bucket.UniqueItemInvestigations++
		}

		if !isItemRequest(hit.ContentType) {
			continue
		}
		bucket.TotalItemRequests++
		if _, seen := seenRequests[pair]; !seen {
			seenRequests[pair] = struct{}{}
			bucket.UniqueItemRequests++
		}
	}

	return store
}
