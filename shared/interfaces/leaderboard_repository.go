package interfaces

import (
	"context"
	"time"
	"treasure-server/shared/models"
)

// LeaderboardRepository defines the interface for the winners leaderboard.
//
//go:generate mockery --name LeaderboardRepository --output ./mocks --outpkg mocks --case=underscore
type LeaderboardRepository interface {
	// RecordWin инкрементирует счетчик побед пользователя и запоминает время победы.
	RecordWin(ctx context.Context, userID string, wonAt time.Time) error

	// Top возвращает до limit лучших игроков по числу побед, по убыванию.
	Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
}
