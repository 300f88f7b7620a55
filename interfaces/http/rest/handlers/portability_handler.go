package handlers

import (
	"io"
	"net/http"

	"go.uber.org/zap"

	"moodlog-backend/application/services"
	"moodlog-backend/pkg/common"
)

// importBodyLimit caps the import payload size
const importBodyLimit = 32 << 20

// PortabilityHandler handles journal export and import
type PortabilityHandler struct {
	portability *services.PortabilityService
	logger      *zap.Logger
}

// NewPortabilityHandler creates a new portability handler
func NewPortabilityHandler(portability *services.PortabilityService, logger *zap.Logger) *PortabilityHandler {
	return &PortabilityHandler{
		portability: portability,
		logger:      logger,
	}
}

// ImportResponse reports how many entries an import added
type ImportResponse struct {
	Imported int `json:"imported"`
}

// Export handles GET /export. The body is the bare entry array so the
// download round-trips through Import unchanged.
func (h *PortabilityHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.portability.Export(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="journal.json"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("Failed to write export", zap.Error(err))
	}
}

// Import handles POST /import. The body is read raw rather than through the
// strict JSON decoder: documents are allowed to carry keys this version does
// not know about.
func (h *PortabilityHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, importBodyLimit))
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "failed to read request body")
		return
	}

	count, err := h.portability.Import(r.Context(), body)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, ImportResponse{Imported: count})
}
