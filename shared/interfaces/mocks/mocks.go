package mocks

import (
	"context"
	"time"
	"treasure-server/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock GameServiceClient
type GameServiceClient struct {
	mock.Mock
}

func (m *GameServiceClient) StartSession(ctx context.Context, userID string) (*models.StartGameResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StartGameResponse), args.Error(1)
}

func (m *GameServiceClient) SubmitChoice(ctx context.Context, sessionID, choice string) (*models.ChoiceResponse, error) {
	args := m.Called(ctx, sessionID, choice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChoiceResponse), args.Error(1)
}

func (m *GameServiceClient) GetSessionStatus(ctx context.Context, sessionID string) (*models.GameStatusResponse, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameStatusResponse), args.Error(1)
}

// Mock GameSessionRepository
type GameSessionRepository struct {
	mock.Mock
}

func (m *GameSessionRepository) Save(ctx context.Context, session *models.GameSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *GameSessionRepository) GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*models.GameSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameSession), args.Error(1)
}

func (m *GameSessionRepository) ListRecentByUserID(ctx context.Context, userID string, limit int) ([]models.GameSession, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GameSession), args.Error(1)
}

// Mock LeaderboardRepository
type LeaderboardRepository struct {
	mock.Mock
}

func (m *LeaderboardRepository) RecordWin(ctx context.Context, userID string, wonAt time.Time) error {
	args := m.Called(ctx, userID, wonAt)
	return args.Error(0)
}

func (m *LeaderboardRepository) Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LeaderboardEntry), args.Error(1)
}
