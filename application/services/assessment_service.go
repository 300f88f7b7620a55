package services

import (
	"context"

	"go.uber.org/zap"

	"moodlog-backend/domain/assessments"
	"moodlog-backend/infrastructure/observability"
)

// AssessmentService exposes the standardized questionnaire catalog
type AssessmentService struct {
	catalog *assessments.Catalog
	metrics *observability.Collector
	logger  *zap.Logger
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(catalog *assessments.Catalog, metrics *observability.Collector, logger *zap.Logger) *AssessmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{
		catalog: catalog,
		metrics: metrics,
		logger:  logger,
	}
}

// List returns every available assessment in registration order
func (s *AssessmentService) List(ctx context.Context) []*assessments.Assessment {
	return s.catalog.List()
}

// Get returns one assessment by its identifier
func (s *AssessmentService) Get(ctx context.Context, id string) (*assessments.Assessment, error) {
	return s.catalog.Get(id)
}

// Score totals the responses for an assessment and interprets the result
func (s *AssessmentService) Score(ctx context.Context, id string, responses []int) (*assessments.Result, error) {
	result, err := s.catalog.Score(id, responses)
	if err != nil {
		return nil, err
	}

	s.metrics.AssessmentsScored.WithLabelValues(id).Inc()
	s.logger.Info("Assessment scored",
		zap.String("assessment", id),
		zap.Int("score", result.Score),
		zap.String("severity", result.Severity),
	)
	return result, nil
}
