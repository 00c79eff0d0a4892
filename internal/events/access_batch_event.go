package events

import (
	"usage-counter/internal/models"
)

// AccessBatchEvent carries the classified hits of one ingested batch for one
// calendar day. Ingestion produces one event per (batch, day) pair; the
// aggregation consumer merges each event into that day's usage report.
//
// Events are partitioned by collection and day, so all events touching one
// daily report are applied by a single worker, in order.
//
// Example JSON:
//
//	{
//	  "batchId": "01ARZ3NDEKTSV4RRFFQ69G5FAV",
//	  "collection": "scl",
//	  "day": "2024-05-10",
//	  "hits": [ ... ]
//	}
type AccessBatchEvent struct {
	BatchID    string        `json:"batchId"`
	Collection string        `json:"collection"`
	Day        string        `json:"day"`
	Hits       []*models.Hit `json:"hits"`
}

// PartitionKey routes the event so that one worker owns one daily report.
func (e *AccessBatchEvent) PartitionKey() string {
	return e.Collection + "|" + e.Day
}
