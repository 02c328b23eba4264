package interfaces

import (
	"context"
	"treasure-server/shared/models"
)

// GameServiceClient - клиентская граница с HTTP API игрового сервиса.
// Любой неуспех транспорта (не-2xx, сетевая ошибка, битое тело) возвращается
// как обычная ошибка; различать подтипы клиентский слой не обязан.
//
//go:generate mockery --name GameServiceClient --output ./mocks --outpkg mocks --case=underscore
type GameServiceClient interface {
	// StartSession начинает новое прохождение. userID может быть пустым.
	StartSession(ctx context.Context, userID string) (*models.StartGameResponse, error)

	// SubmitChoice отправляет выбор игрока в рамках сессии.
	SubmitChoice(ctx context.Context, sessionID, choice string) (*models.ChoiceResponse, error)

	// GetSessionStatus возвращает текущее состояние сессии.
	GetSessionStatus(ctx context.Context, sessionID string) (*models.GameStatusResponse, error)
}
