package sessions

import (
	"sort"
	"time"

	"usage-counter/internal/models"
	"usage-counter/internal/shared/loggers"
)

// doubleClickInterval is the window inside which a repeated click on the same
// target by the same session counts as one access.
const doubleClickInterval = 30 * time.Second

// bucketKey groups hits that can suppress each other: same session, same
// aggregation resource. Hits in different buckets never interact.
type bucketKey struct {
	sessionID string
	resource  models.ResourceKey
}

// Deduplicator removes double-click artifacts from a batch of hits before
// aggregation. It is stateless across calls; suppression only applies within
// the batch it is given.
type Deduplicator struct {
	logger loggers.Logger
}

func NewDeduplicator(logger loggers.Logger) *Deduplicator {
	return &Deduplicator{logger: logger}
}

// Deduplicate returns the hits that survive double-click suppression.
//
// Hits are bucketed by session and resource and ordered by timestamp. A hit
// is suppressed when its predecessor in the bucket targeted the same URL less
// than thirty seconds earlier on the same calendar day. A suppressed hit
// still anchors the comparison for the next one, so a run of rapid clicks on
// one target collapses to its earliest click only.
func (d *Deduplicator) Deduplicate(hits []*models.Hit) []*models.Hit {
	metricHitsExaminedTotal.Add(float64(len(hits)))
	if len(hits) < 2 {
		return hits
	}

	buckets := make(map[bucketKey][]*models.Hit)
	order := make([]bucketKey, 0, len(hits))
	for _, hit := range hits {
		key := bucketKey{sessionID: hit.SessionID, resource: hit.ResourceKey()}
		if _, ok := buckets[key]; !ok {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], hit)
	}

	survivors := make([]*models.Hit, 0, len(hits))
	for _, key := range order {
		bucket := buckets[key]
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Timestamp.Before(bucket[j].Timestamp)
		})

		for i, hit := range bucket {
			if i > 0 && isDoubleClick(bucket[i-1], hit) {
				metricDoubleClicksSuppressedTotal.Inc()
				d.logger.Debug().
					Str(loggers.FieldSessionID, hit.SessionID).
					Str("action_target", hit.ActionTarget).
					Time("timestamp", hit.Timestamp).
					Msg("double click suppressed")
				continue
			}
			survivors = append(survivors, hit)
		}
	}

	return survivors
}

// isDoubleClick reports whether current repeats previous closely enough to be
// one access. A pair that straddles midnight is kept even when the gap is
// under the interval: daily reports must not lose the second day's access.
func isDoubleClick(previous, current *models.Hit) bool {
	if current.ActionTarget != previous.ActionTarget {
		return false
	}
	if current.Timestamp.Sub(previous.Timestamp) >= doubleClickInterval {
		return false
	}
	return current.Day() == previous.Day()
}
