package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"moodlog-backend/application/services"
	"moodlog-backend/domain/analytics"
	"moodlog-backend/pkg/common"
)

// dateLayout renders the trend date range as calendar days
const dateLayout = "2006-01-02"

// InsightsHandler handles analytics HTTP requests
type InsightsHandler struct {
	insights *services.InsightsService
	logger   *zap.Logger
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(insights *services.InsightsService, logger *zap.Logger) *InsightsHandler {
	return &InsightsHandler{
		insights: insights,
		logger:   logger,
	}
}

// DateRangeView is the span of days a report covers
type DateRangeView struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TrendsResponse represents the trend report payload
type TrendsResponse struct {
	TotalEntries int           `json:"total_entries"`
	AvgMood      float64       `json:"avg_mood"`
	AvgStress    float64       `json:"avg_stress"`
	AvgEnergy    float64       `json:"avg_energy"`
	AvgSleep     float64       `json:"avg_sleep"`
	MoodTrend    string        `json:"mood_trend"`
	DateRange    DateRangeView `json:"date_range"`
}

// WeekdayAverageView is one weekday bucket. AverageMood stays null for days
// without entries.
type WeekdayAverageView struct {
	Day         string   `json:"day"`
	AverageMood *float64 `json:"average_mood"`
	EntryCount  int      `json:"entry_count"`
}

// TagCountView is one tag with its occurrence count
type TagCountView struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// PatternsResponse represents the pattern report payload
type PatternsResponse struct {
	WeekdayAverages []WeekdayAverageView `json:"weekday_averages"`
	CommonTags      []TagCountView       `json:"common_tags"`
	TotalEntries    int                  `json:"total_entries"`
}

// Trends handles GET /insights/trends
func (h *InsightsHandler) Trends(w http.ResponseWriter, r *http.Request) {
	days := h.insights.DefaultTrendWindow()
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, "days must be an integer")
			return
		}
		days = parsed
	}

	report, err := h.insights.Trends(r.Context(), days)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toTrendsResponse(report))
}

// Patterns handles GET /insights/patterns
func (h *InsightsHandler) Patterns(w http.ResponseWriter, r *http.Request) {
	report, err := h.insights.Patterns(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toPatternsResponse(report))
}

func toTrendsResponse(report *analytics.TrendReport) TrendsResponse {
	return TrendsResponse{
		TotalEntries: report.EntryCount,
		AvgMood:      report.AverageMood,
		AvgStress:    report.AverageStress,
		AvgEnergy:    report.AverageEnergy,
		AvgSleep:     report.AverageSleepHours,
		MoodTrend:    string(report.MoodTrend),
		DateRange: DateRangeView{
			Start: report.From.Format(dateLayout),
			End:   report.To.Format(dateLayout),
		},
	}
}

func toPatternsResponse(report *analytics.PatternReport) PatternsResponse {
	weekdays := make([]WeekdayAverageView, 0, len(report.WeekdayMoods))
	for _, bucket := range report.WeekdayMoods {
		weekdays = append(weekdays, WeekdayAverageView{
			Day:         bucket.Day,
			AverageMood: bucket.AverageMood,
			EntryCount:  bucket.EntryCount,
		})
	}

	tags := make([]TagCountView, 0, len(report.TopTags))
	for _, tag := range report.TopTags {
		tags = append(tags, TagCountView{Tag: tag.Tag, Count: tag.Count})
	}

	return PatternsResponse{
		WeekdayAverages: weekdays,
		CommonTags:      tags,
		TotalEntries:    report.EntryCount,
	}
}
