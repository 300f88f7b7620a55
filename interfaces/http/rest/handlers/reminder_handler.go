package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"moodlog-backend/application/services"
	"moodlog-backend/pkg/common"
	"moodlog-backend/pkg/utils"
)

// ReminderHandler handles notification schedule HTTP requests
type ReminderHandler struct {
	reminders *services.ReminderService
	logger    *zap.Logger
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(reminders *services.ReminderService, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{
		reminders: reminders,
		logger:    logger,
	}
}

// ScheduleReminderRequest represents the request body for scheduling a
// reminder. Weekday is only consulted for weekly summaries.
type ScheduleReminderRequest struct {
	Kind      string `json:"kind" validate:"required,oneof=daily weekly_summary low_mood inactivity"`
	TimeOfDay string `json:"time_of_day" validate:"required"`
	Weekday   string `json:"weekday,omitempty"`
	Recipient string `json:"recipient" validate:"required,email"`
}

// ReminderListResponse represents the scheduled jobs
type ReminderListResponse struct {
	Jobs  []services.ReminderJob `json:"jobs"`
	Count int                    `json:"count"`
}

// ScheduleReminder handles POST /reminders
func (h *ReminderHandler) ScheduleReminder(w http.ResponseWriter, r *http.Request) {
	var req ScheduleReminderRequest
	if err := common.ParseJSONBody(r, &req, maxRequestBody); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	var (
		job services.ReminderJob
		err error
	)
	switch services.ReminderKind(req.Kind) {
	case services.ReminderDaily:
		job, err = h.reminders.ScheduleDailyReminder(req.TimeOfDay, req.Recipient)
	case services.ReminderWeeklySummary:
		weekday, ok := parseWeekday(req.Weekday)
		if !ok {
			common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, "weekday must name a day of the week")
			return
		}
		job, err = h.reminders.ScheduleWeeklySummary(weekday, req.TimeOfDay, req.Recipient)
	case services.ReminderLowMood:
		job, err = h.reminders.ScheduleLowMoodAlert(req.TimeOfDay, req.Recipient)
	case services.ReminderInactivity:
		job, err = h.reminders.ScheduleInactivityAlert(req.TimeOfDay, req.Recipient)
	}
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, job)
}

// ListReminders handles GET /reminders
func (h *ReminderHandler) ListReminders(w http.ResponseWriter, r *http.Request) {
	jobs := h.reminders.Jobs()
	common.RespondJSON(w, http.StatusOK, ReminderListResponse{
		Jobs:  jobs,
		Count: len(jobs),
	})
}

// CancelReminder handles DELETE /reminders/{jobID}
func (h *ReminderHandler) CancelReminder(w http.ResponseWriter, r *http.Request) {
	if err := h.reminders.CancelJob(chi.URLParam(r, "jobID")); err != nil {
		common.RespondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseWeekday(name string) (time.Weekday, bool) {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if day.String() == name {
			return day, true
		}
	}
	return time.Sunday, false
}
