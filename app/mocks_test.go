package app

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SylvinIsamaza/lung-cancer/models"
)

// MockUserRepository is a testify mock over ports.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockRecordRepository is a testify mock over ports.RecordRepository
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) Save(ctx context.Context, record *models.PatientRecord) (*models.PatientRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PatientRecord), args.Error(1)
}

func (m *MockRecordRepository) LatestFor(ctx context.Context, username string) (*models.PatientRecord, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PatientRecord), args.Error(1)
}

func (m *MockRecordRepository) CountFor(ctx context.Context, username string) (int, error) {
	args := m.Called(ctx, username)
	return args.Int(0), args.Error(1)
}

// MockClassifier is a testify mock over ports.Classifier
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Predict(vector []float64) (int, error) {
	args := m.Called(vector)
	return args.Int(0), args.Error(1)
}

func (m *MockClassifier) PredictProba(vector []float64) (float64, error) {
	args := m.Called(vector)
	return args.Get(0).(float64), args.Error(1)
}
