package mocks

import (
	"context"
	"treasure-server/internal/messaging"

	"github.com/stretchr/testify/mock"
)

// Mock GameEventPublisher
type GameEventPublisher struct {
	mock.Mock
}

func (m *GameEventPublisher) PublishGameFinished(ctx context.Context, payload messaging.GameFinishedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
