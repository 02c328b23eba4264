package mocks

import (
	"context"
	"treasure-server/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock GameService
type GameService struct {
	mock.Mock
}

func (m *GameService) StartGame(ctx context.Context, userID string) (*models.StartGameResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StartGameResponse), args.Error(1)
}

func (m *GameService) MakeChoice(ctx context.Context, sessionID uuid.UUID, choice string) (*models.ChoiceResponse, error) {
	args := m.Called(ctx, sessionID, choice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChoiceResponse), args.Error(1)
}

func (m *GameService) GetStatus(ctx context.Context, sessionID uuid.UUID) (*models.GameStatusResponse, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameStatusResponse), args.Error(1)
}

func (m *GameService) GetLeaderboard(ctx context.Context, limit int) (*models.LeaderboardResponse, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LeaderboardResponse), args.Error(1)
}
