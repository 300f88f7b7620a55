package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"moodlog-backend/application/services"
	"moodlog-backend/domain/assessments"
	"moodlog-backend/pkg/common"
	"moodlog-backend/pkg/utils"
)

// AssessmentHandler handles standardized questionnaire HTTP requests
type AssessmentHandler struct {
	assessments *services.AssessmentService
	logger      *zap.Logger
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessments *services.AssessmentService, logger *zap.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		assessments: assessments,
		logger:      logger,
	}
}

// AssessmentSummaryView lists one assessment without its questions
type AssessmentSummaryView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	QuestionCount int    `json:"question_count"`
}

// QuestionView is one questionnaire item
type QuestionView struct {
	ID     int    `json:"id"`
	Text   string `json:"text"`
	Prompt string `json:"prompt"`
}

// AssessmentView is one assessment with its full question list
type AssessmentView struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Questions []QuestionView `json:"questions"`
}

// ScoreRequest represents the response vector for an assessment
type ScoreRequest struct {
	Responses []int `json:"responses" validate:"required"`
}

// ScoreResponse represents a scored assessment
type ScoreResponse struct {
	AssessmentID   string `json:"assessment_id"`
	Score          int    `json:"score"`
	Severity       string `json:"severity"`
	Interpretation string `json:"interpretation"`
}

// ListAssessments handles GET /assessments
func (h *AssessmentHandler) ListAssessments(w http.ResponseWriter, r *http.Request) {
	catalog := h.assessments.List(r.Context())

	views := make([]AssessmentSummaryView, 0, len(catalog))
	for _, assessment := range catalog {
		views = append(views, AssessmentSummaryView{
			ID:            assessment.ID,
			Name:          assessment.Name,
			QuestionCount: len(assessment.Questions()),
		})
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"assessments": views,
		"count":       len(views),
	})
}

// GetAssessment handles GET /assessments/{assessmentID}
func (h *AssessmentHandler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	assessment, err := h.assessments.Get(r.Context(), chi.URLParam(r, "assessmentID"))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toAssessmentView(assessment))
}

// ScoreAssessment handles POST /assessments/{assessmentID}/score
func (h *AssessmentHandler) ScoreAssessment(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := common.ParseJSONBody(r, &req, maxRequestBody); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	result, err := h.assessments.Score(r.Context(), chi.URLParam(r, "assessmentID"), req.Responses)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, ScoreResponse{
		AssessmentID:   result.AssessmentID,
		Score:          result.Score,
		Severity:       result.Severity,
		Interpretation: result.Interpretation,
	})
}

func toAssessmentView(assessment *assessments.Assessment) AssessmentView {
	questions := assessment.Questions()
	views := make([]QuestionView, 0, len(questions))
	for _, question := range questions {
		views = append(views, QuestionView{
			ID:     question.ID,
			Text:   question.Text,
			Prompt: question.Prompt,
		})
	}
	return AssessmentView{
		ID:        assessment.ID,
		Name:      assessment.Name,
		Questions: views,
	}
}
