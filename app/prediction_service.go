package app

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/SylvinIsamaza/lung-cancer/internal"
	"github.com/SylvinIsamaza/lung-cancer/internal/errors"
	"github.com/SylvinIsamaza/lung-cancer/models"
	"github.com/SylvinIsamaza/lung-cancer/ports"
)

const (
	// RiskLevelPositive is the elevated-risk outcome label
	RiskLevelPositive = "YES"
	// RiskLevelNegative is the low-risk outcome label
	RiskLevelNegative = "NO"
)

// AssessmentResult pairs a risk assessment with its stored record
type AssessmentResult struct {
	Assessment models.RiskAssessment
	Record     *models.PatientRecord
}

// DashboardSummary aggregates a user's assessment history
type DashboardSummary struct {
	LastPredictionDate time.Time `json:"last_prediction_date"`
	TotalAssessment    int       `json:"total_assessment"`
}

// PredictionService runs validated survey records through the classifier and
// persists the attributed result. The classifier is shared read-only state;
// the semaphore bounds how many scoring calls run at once.
type PredictionService struct {
	classifier ports.Classifier
	records    ports.RecordRepository
	sem        *semaphore.Weighted
	timeout    time.Duration
	logger     *internal.Logger
}

// NewPredictionService creates a prediction service
func NewPredictionService(
	classifier ports.Classifier,
	records ports.RecordRepository,
	maxConcurrent int64,
	timeout time.Duration,
	logger *internal.Logger,
) *PredictionService {
	return &PredictionService{
		classifier: classifier,
		records:    records,
		sem:        semaphore.NewWeighted(maxConcurrent),
		timeout:    timeout,
		logger:     logger.Component("prediction"),
	}
}

// Assess validates the input, scores it and atomically persists the record
// attributed to the caller. The whole predict-and-persist path shares one
// timeout so a stalled store cannot hang the request; on timeout nothing is
// written.
func (s *PredictionService) Assess(ctx context.Context, user *models.User, input *models.PatientInput) (*AssessmentResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	assessment, err := s.classify(ctx, input.Vector())
	if err != nil {
		s.logger.Error("classification failed for %s: %v", user.Username, err)
		return nil, err
	}

	record := models.NewPatientRecord(input, user.Username, time.Now())
	record.Result = assessment.Probability

	stored, err := s.records.Save(ctx, record)
	if err != nil {
		s.logger.Error("failed to persist record for %s: %v", user.Username, err)
		return nil, err
	}

	return &AssessmentResult{
		Assessment: *assessment,
		Record:     stored,
	}, nil
}

// Dashboard returns the caller's latest prediction date and total count.
// Fails with not-found when the user has no records, which is distinct from
// a zero-valued success.
func (s *PredictionService) Dashboard(ctx context.Context, user *models.User) (*DashboardSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	latest, err := s.records.LatestFor(ctx, user.Username)
	if err != nil {
		return nil, err
	}

	count, err := s.records.CountFor(ctx, user.Username)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		LastPredictionDate: latest.CreatedAt,
		TotalAssessment:    count,
	}, nil
}

func (s *PredictionService) classify(ctx context.Context, vector []float64) (*models.RiskAssessment, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, errors.PredictionError("prediction cancelled while waiting for classifier", err)
	}
	defer s.sem.Release(1)

	probability, err := s.classifier.PredictProba(vector)
	if err != nil {
		return nil, err
	}

	label, err := s.classifier.Predict(vector)
	if err != nil {
		return nil, err
	}

	riskLevel := RiskLevelNegative
	if label == 1 {
		riskLevel = RiskLevelPositive
	}

	return &models.RiskAssessment{
		RiskLevel:   riskLevel,
		Probability: probability,
	}, nil
}
