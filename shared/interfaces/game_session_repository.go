package interfaces

import (
	"context"
	"treasure-server/shared/models"

	"github.com/google/uuid"
)

// GameSessionRepository defines the interface for persisting game sessions.
//
//go:generate mockery --name GameSessionRepository --output ./mocks --outpkg mocks --case=underscore
type GameSessionRepository interface {
	// Save создает запись сессии или обновляет существующую по session_id (upsert).
	Save(ctx context.Context, session *models.GameSession) error

	// GetBySessionID возвращает сессию по ID или ErrNotFound.
	GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*models.GameSession, error)

	// ListRecentByUserID возвращает последние сессии пользователя, новые первыми.
	ListRecentByUserID(ctx context.Context, userID string, limit int) ([]models.GameSession, error)
}
