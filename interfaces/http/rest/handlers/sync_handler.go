package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"moodlog-backend/application/services"
	"moodlog-backend/pkg/common"
)

// SyncHandler handles mirror reconciliation HTTP requests
type SyncHandler struct {
	sync   *services.SyncService
	logger *zap.Logger
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(sync *services.SyncService, logger *zap.Logger) *SyncHandler {
	return &SyncHandler{
		sync:   sync,
		logger: logger,
	}
}

// SyncResponse reports how many entries a sync operation moved
type SyncResponse struct {
	Count int `json:"count"`
}

// Hydrate handles POST /sync/hydrate
func (h *SyncHandler) Hydrate(w http.ResponseWriter, r *http.Request) {
	count, err := h.sync.Hydrate(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, SyncResponse{Count: count})
}

// Backfill handles POST /sync/backfill
func (h *SyncHandler) Backfill(w http.ResponseWriter, r *http.Request) {
	count, err := h.sync.Backfill(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, SyncResponse{Count: count})
}
