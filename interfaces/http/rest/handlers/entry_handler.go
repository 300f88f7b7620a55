// Package handlers contains the HTTP handlers for the journal API.
package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"moodlog-backend/application/services"
	"moodlog-backend/domain/core/entities"
	"moodlog-backend/pkg/common"
	"moodlog-backend/pkg/utils"
)

const maxRequestBody = 1 << 20

// EntryHandler handles journal entry HTTP requests
type EntryHandler struct {
	journal *services.JournalService
	logger  *zap.Logger
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(journal *services.JournalService, logger *zap.Logger) *EntryHandler {
	return &EntryHandler{
		journal: journal,
		logger:  logger,
	}
}

// LogEntryRequest represents the request body for logging an entry. The
// timestamp is always assigned server-side and cannot be supplied here.
type LogEntryRequest struct {
	MoodScore   *int     `json:"mood_score" validate:"required"`
	StressLevel *int     `json:"stress_level,omitempty"`
	EnergyLevel *int     `json:"energy_level,omitempty"`
	SleepHours  *float64 `json:"sleep_hours,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// EntryView is the JSON projection of one journal entry
type EntryView struct {
	Timestamp   string   `json:"timestamp"`
	MoodScore   int      `json:"mood_score"`
	Notes       string   `json:"notes"`
	StressLevel int      `json:"stress_level"`
	EnergyLevel int      `json:"energy_level"`
	SleepHours  float64  `json:"sleep_hours"`
	Tags        []string `json:"tags"`
}

// LogEntryResponse represents the response for logging an entry
type LogEntryResponse struct {
	Entry    EntryView `json:"entry"`
	Mirrored bool      `json:"mirrored"`
}

// EntryListResponse represents a list of entries
type EntryListResponse struct {
	Entries []EntryView `json:"entries"`
	Count   int         `json:"count"`
}

// LogEntry handles POST /entries
func (h *EntryHandler) LogEntry(w http.ResponseWriter, r *http.Request) {
	var req LogEntryRequest
	if err := common.ParseJSONBody(r, &req, maxRequestBody); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	draft := entities.EntryDraft{
		MoodScore:   *req.MoodScore,
		StressLevel: req.StressLevel,
		EnergyLevel: req.EnergyLevel,
		SleepHours:  req.SleepHours,
		Notes:       req.Notes,
		Tags:        req.Tags,
	}

	entry, mirrored, err := h.journal.LogEntry(r.Context(), draft)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, LogEntryResponse{
		Entry:    toEntryView(entry),
		Mirrored: mirrored,
	})
}

// ListEntries handles GET /entries. Without pagination parameters the full
// journal is returned in insertion order.
func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	params, paginated := common.ExtractPaginationParams(r)
	entries := h.journal.Entries()

	if !paginated {
		common.RespondJSON(w, http.StatusOK, EntryListResponse{
			Entries: toEntryViews(entries),
			Count:   len(entries),
		})
		return
	}

	total := len(entries)
	start := params.CalculateOffset()
	if start > total {
		start = total
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}

	common.RespondWithMeta(w, http.StatusOK, EntryListResponse{
		Entries: toEntryViews(entries[start:end]),
		Count:   end - start,
	}, &common.MetaInfo{
		Pagination: common.BuildPaginationMeta(params.Page, params.PageSize, total),
	})
}

// RecentEntries handles GET /entries/recent
func (h *EntryHandler) RecentEntries(w http.ResponseWriter, r *http.Request) {
	days := h.journal.DefaultRecentWindow()
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, "days must be an integer")
			return
		}
		days = parsed
	}

	entries, err := h.journal.RecentEntries(days)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, EntryListResponse{
		Entries: toEntryViews(entries),
		Count:   len(entries),
	})
}

// SearchEntries handles GET /entries/search
func (h *EntryHandler) SearchEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.journal.SearchByTag(r.URL.Query().Get("tag"))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, EntryListResponse{
		Entries: toEntryViews(entries),
		Count:   len(entries),
	})
}

func toEntryView(entry *entities.Entry) EntryView {
	return EntryView{
		Timestamp:   utils.FormatTimestamp(entry.Timestamp()),
		MoodScore:   entry.MoodScore(),
		Notes:       entry.Notes(),
		StressLevel: entry.StressLevel(),
		EnergyLevel: entry.EnergyLevel(),
		SleepHours:  entry.SleepHours(),
		Tags:        entry.GetTags(),
	}
}

func toEntryViews(entries []*entities.Entry) []EntryView {
	views := make([]EntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, toEntryView(entry))
	}
	return views
}
