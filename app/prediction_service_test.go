package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SylvinIsamaza/lung-cancer/internal"
	"github.com/SylvinIsamaza/lung-cancer/internal/errors"
	"github.com/SylvinIsamaza/lung-cancer/models"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func fullInput() *models.PatientInput {
	return &models.PatientInput{
		Age:                  intPtr(55),
		Gender:               intPtr(0),
		Smoking:              intPtr(1),
		FingerDiscoloration:  intPtr(1),
		MentalStress:         intPtr(0),
		ExposureToPollution:  intPtr(1),
		LongTermIllness:      intPtr(0),
		EnergyLevel:          floatPtr(51.7),
		ImmuneWeakness:       intPtr(1),
		BreathingIssue:       intPtr(1),
		AlcoholConsumption:   intPtr(0),
		ThroatDiscomfort:     intPtr(0),
		OxygenSaturation:     floatPtr(96.1),
		ChestTightness:       intPtr(0),
		FamilyHistory:        intPtr(1),
		SmokingFamilyHistory: intPtr(1),
		StressImmune:         intPtr(0),
	}
}

func newPredictionService(classifier *MockClassifier, records *MockRecordRepository) *PredictionService {
	return NewPredictionService(classifier, records, 4, 5*time.Second, internal.NewLogger(internal.LogLevelError))
}

func TestAssess_PersistsAttributedRecord(t *testing.T) {
	classifier := &MockClassifier{}
	classifier.On("PredictProba", mock.Anything).Return(0.82, nil)
	classifier.On("Predict", mock.Anything).Return(1, nil)

	records := &MockRecordRepository{}
	records.On("Save", mock.Anything, mock.MatchedBy(func(r *models.PatientRecord) bool {
		return r.RecordedBy == "alice" && r.Result == 0.82 && !r.CreatedAt.IsZero()
	})).Return(&models.PatientRecord{RecordedBy: "alice", Result: 0.82}, nil)

	svc := newPredictionService(classifier, records)
	user := &models.User{Username: "alice"}

	result, err := svc.Assess(context.Background(), user, fullInput())
	require.NoError(t, err)

	assert.Equal(t, RiskLevelPositive, result.Assessment.RiskLevel)
	assert.Equal(t, 0.82, result.Assessment.Probability)
	records.AssertExpectations(t)
	records.AssertNumberOfCalls(t, "Save", 1)
}

func TestAssess_NegativeLabel(t *testing.T) {
	classifier := &MockClassifier{}
	classifier.On("PredictProba", mock.Anything).Return(0.12, nil)
	classifier.On("Predict", mock.Anything).Return(0, nil)

	records := &MockRecordRepository{}
	records.On("Save", mock.Anything, mock.Anything).Return(&models.PatientRecord{}, nil)

	svc := newPredictionService(classifier, records)
	result, err := svc.Assess(context.Background(), &models.User{Username: "bob"}, fullInput())
	require.NoError(t, err)

	assert.Equal(t, RiskLevelNegative, result.Assessment.RiskLevel)
}

func TestAssess_ValidationShortCircuits(t *testing.T) {
	classifier := &MockClassifier{}
	records := &MockRecordRepository{}

	svc := newPredictionService(classifier, records)
	input := fullInput()
	input.OxygenSaturation = nil

	_, err := svc.Assess(context.Background(), &models.User{Username: "alice"}, input)
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))

	// Neither classifier nor storage may be touched on invalid input.
	classifier.AssertNotCalled(t, "PredictProba", mock.Anything)
	records.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAssess_ClassifierFailureSkipsPersist(t *testing.T) {
	classifier := &MockClassifier{}
	classifier.On("PredictProba", mock.Anything).Return(0.0, errors.PredictionError("malformed vector", nil))

	records := &MockRecordRepository{}

	svc := newPredictionService(classifier, records)
	_, err := svc.Assess(context.Background(), &models.User{Username: "alice"}, fullInput())
	require.Error(t, err)
	assert.Equal(t, errors.CodePredictionError, errors.GetCode(err))
	records.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAssess_StorageFailurePropagates(t *testing.T) {
	classifier := &MockClassifier{}
	classifier.On("PredictProba", mock.Anything).Return(0.5, nil)
	classifier.On("Predict", mock.Anything).Return(1, nil)

	records := &MockRecordRepository{}
	records.On("Save", mock.Anything, mock.Anything).Return(nil, errors.DatabaseError("insert failed", nil))

	svc := newPredictionService(classifier, records)
	_, err := svc.Assess(context.Background(), &models.User{Username: "alice"}, fullInput())
	require.Error(t, err)
	assert.Equal(t, errors.CodeDatabaseError, errors.GetCode(err))
}

func TestDashboard_Summary(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	records := &MockRecordRepository{}
	records.On("LatestFor", mock.Anything, "alice").Return(&models.PatientRecord{CreatedAt: createdAt}, nil)
	records.On("CountFor", mock.Anything, "alice").Return(3, nil)

	svc := newPredictionService(&MockClassifier{}, records)
	summary, err := svc.Dashboard(context.Background(), &models.User{Username: "alice"})
	require.NoError(t, err)

	assert.Equal(t, createdAt, summary.LastPredictionDate)
	assert.Equal(t, 3, summary.TotalAssessment)
}

func TestDashboard_NoRecords(t *testing.T) {
	records := &MockRecordRepository{}
	records.On("LatestFor", mock.Anything, "alice").Return(nil, errors.NotFound("prediction"))

	svc := newPredictionService(&MockClassifier{}, records)
	_, err := svc.Dashboard(context.Background(), &models.User{Username: "alice"})
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
	records.AssertNotCalled(t, "CountFor", mock.Anything, mock.Anything)
}
