package database

import (
	"context"
	"fmt"
	"time"
	"treasure-server/shared/interfaces"
	"treasure-server/shared/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// Sorted set: member - user_id, score - количество побед.
	leaderboardWinsKey = "leaderboard:wins"
	// Hash: user_id -> время последней победы (RFC3339).
	leaderboardLastWinKey = "leaderboard:last_win"
)

// Compile-time check to ensure redisLeaderboardRepository implements LeaderboardRepository
var _ interfaces.LeaderboardRepository = (*redisLeaderboardRepository)(nil)

type redisLeaderboardRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisLeaderboardRepository creates a new Redis-backed LeaderboardRepository.
func NewRedisLeaderboardRepository(client *redis.Client, logger *zap.Logger) interfaces.LeaderboardRepository {
	return &redisLeaderboardRepository{
		client: client,
		logger: logger.Named("RedisLeaderboardRepo"),
	}
}

// RecordWin инкрементирует счетчик побед и запоминает время победы.
// Обе записи идут одним pipeline.
func (r *redisLeaderboardRepository) RecordWin(ctx context.Context, userID string, wonAt time.Time) error {
	pipe := r.client.Pipeline()
	pipe.ZIncrBy(ctx, leaderboardWinsKey, 1, userID)
	pipe.HSet(ctx, leaderboardLastWinKey, userID, wonAt.UTC().Format(time.RFC3339))

	r.logger.Debug("Recording win in leaderboard",
		zap.String("userID", userID),
		zap.Time("wonAt", wonAt),
	)

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to record win in redis", zap.Error(err), zap.String("userID", userID))
		return fmt.Errorf("failed to record win for user %s: %w", userID, err)
	}
	return nil
}

// Top возвращает до limit лучших игроков по числу побед, по убыванию.
func (r *redisLeaderboardRepository) Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	winners, err := r.client.ZRevRangeWithScores(ctx, leaderboardWinsKey, 0, int64(limit-1)).Result()
	if err != nil {
		r.logger.Error("Failed to read leaderboard from redis", zap.Error(err))
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}
	if len(winners) == 0 {
		return []models.LeaderboardEntry{}, nil
	}

	userIDs := make([]string, 0, len(winners))
	for _, winner := range winners {
		userIDs = append(userIDs, winner.Member.(string))
	}

	lastWins, err := r.client.HMGet(ctx, leaderboardLastWinKey, userIDs...).Result()
	if err != nil {
		r.logger.Error("Failed to read last win times from redis", zap.Error(err))
		return nil, fmt.Errorf("failed to read last win times: %w", err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(winners))
	for i, winner := range winners {
		entry := models.LeaderboardEntry{
			UserID: userIDs[i],
			Wins:   int64(winner.Score),
		}
		if raw, ok := lastWins[i].(string); ok {
			lastWin, parseErr := time.Parse(time.RFC3339, raw)
			if parseErr != nil {
				// Битое значение не должно ронять весь лидерборд
				r.logger.Warn("Malformed last win timestamp in redis",
					zap.String("userID", userIDs[i]),
					zap.String("value", raw),
				)
			} else {
				entry.LastWin = lastWin
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
