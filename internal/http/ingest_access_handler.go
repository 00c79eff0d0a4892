package http

import (
	"encoding/json"
	"net/http"

	"usage-counter/internal/ingestors"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

// IngestAccessResponse is the body returned for an accepted access batch.
type IngestAccessResponse struct {
	BatchID     string `json:"batchId"`
	StoredCount int    `json:"storedCount"`
}

type ingestAccessHandler struct {
	ingestionService ingestors.IngestionService
}

func NewIngestAccessHandler(ingestionService ingestors.IngestionService) AppHttpHandler {
	return &ingestAccessHandler{
		ingestionService: ingestionService,
	}
}

// Handle processes POST /accesses requests.
func (h *ingestAccessHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	result, err := h.ingestionService.IngestBatch(r.Context(), collectionID(r), idempotencyKey(r), contentType(r), r.Body)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	return json.NewEncoder(w).Encode(IngestAccessResponse{
		BatchID:     result.BatchID,
		StoredCount: result.StoredCount,
	})
}
