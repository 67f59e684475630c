package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"vrajamarii/internal/models"
)

// Shared MockEvaluationRepository
type MockEvaluationRepository struct {
	mock.Mock
}

func (m *MockEvaluationRepository) UpsertEvaluation(ctx context.Context, rec *models.EvaluationRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockEvaluationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.EvaluationRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EvaluationRecord), args.Error(1)
}

func (m *MockEvaluationRepository) ExistsForUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

// Shared MockWaitlistRepository
type MockWaitlistRepository struct {
	mock.Mock
}

func (m *MockWaitlistRepository) Create(ctx context.Context, entry *models.WaitlistEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockWaitlistRepository) FindByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WaitlistEntry), args.Error(1)
}

func (m *MockWaitlistRepository) SetBookingConfirmed(ctx context.Context, id uint, confirmed bool) error {
	args := m.Called(ctx, id, confirmed)
	return args.Error(0)
}

// Shared MockUserProfileRepository
type MockUserProfileRepository struct {
	mock.Mock
}

func (m *MockUserProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockUserProfileRepository) Upsert(ctx context.Context, profile *models.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
