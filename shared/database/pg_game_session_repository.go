package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"treasure-server/shared/interfaces"
	"treasure-server/shared/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	gameSessionFields = `session_id, user_id, current_step, choices_made, won, game_over, created_at, updated_at`

	upsertGameSessionQuery = `
        INSERT INTO game_sessions
            (session_id, user_id, current_step, choices_made, won, game_over, created_at, updated_at)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (session_id) DO UPDATE SET
            current_step = EXCLUDED.current_step,
            choices_made = EXCLUDED.choices_made,
            won          = EXCLUDED.won,
            game_over    = EXCLUDED.game_over,
            updated_at   = EXCLUDED.updated_at
            -- user_id и created_at после создания не меняются
    `
	getGameSessionByIDQuery = `
        SELECT ` + gameSessionFields + `
        FROM game_sessions
        WHERE session_id = $1
    `
	listGameSessionsByUserQuery = `
        SELECT ` + gameSessionFields + `
        FROM game_sessions
        WHERE user_id = $1
        ORDER BY updated_at DESC
        LIMIT $2
    `
)

// Compile-time check to ensure pgGameSessionRepository implements the interface
var _ interfaces.GameSessionRepository = (*pgGameSessionRepository)(nil)

// gameSessionRow - строка таблицы game_sessions.
// История выборов лежит в jsonb, поэтому гоняем ее через []byte явно.
type gameSessionRow struct {
	SessionID   uuid.UUID `db:"session_id"`
	UserID      string    `db:"user_id"`
	CurrentStep string    `db:"current_step"`
	ChoicesMade []byte    `db:"choices_made"`
	Won         bool      `db:"won"`
	GameOver    bool      `db:"game_over"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r *gameSessionRow) toModel() (*models.GameSession, error) {
	session := &models.GameSession{
		SessionID:   r.SessionID,
		UserID:      r.UserID,
		CurrentStep: r.CurrentStep,
		ChoicesMade: []models.GameChoice{},
		Won:         r.Won,
		GameOver:    r.GameOver,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if len(r.ChoicesMade) > 0 {
		if err := json.Unmarshal(r.ChoicesMade, &session.ChoicesMade); err != nil {
			return nil, fmt.Errorf("failed to unmarshal choices_made for session %s: %w", r.SessionID, err)
		}
	}
	return session, nil
}

// pgGameSessionRepository is the PostgreSQL implementation of GameSessionRepository
type pgGameSessionRepository struct {
	db     interfaces.DBTX // *pgxpool.Pool или pgx.Tx
	logger *zap.Logger
}

// NewPgGameSessionRepository creates a new repository instance.
func NewPgGameSessionRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.GameSessionRepository {
	return &pgGameSessionRepository{
		db:     db,
		logger: logger.Named("PgGameSessionRepo"),
	}
}

// Save создает запись сессии или обновляет существующую (upsert по session_id).
func (r *pgGameSessionRepository) Save(ctx context.Context, session *models.GameSession) error {
	session.UpdatedAt = time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = session.UpdatedAt
	}

	choicesJSON, err := json.Marshal(session.ChoicesMade)
	if err != nil {
		r.logger.Error("Failed to marshal choices_made", zap.Error(err), zap.String("sessionID", session.SessionID.String()))
		return fmt.Errorf("failed to marshal choices_made: %w", err)
	}

	r.logger.Debug("Saving game session",
		zap.String("sessionID", session.SessionID.String()),
		zap.String("userID", session.UserID),
		zap.String("currentStep", session.CurrentStep),
		zap.Bool("gameOver", session.GameOver),
	)

	_, err = r.db.Exec(ctx, upsertGameSessionQuery,
		session.SessionID,
		session.UserID,
		session.CurrentStep,
		choicesJSON,
		session.Won,
		session.GameOver,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to save game session", zap.Error(err), zap.String("sessionID", session.SessionID.String()))
		return fmt.Errorf("failed to save game session %s: %w", session.SessionID, err)
	}
	return nil
}

// GetBySessionID возвращает сессию по ID или interfaces.ErrNotFound.
func (r *pgGameSessionRepository) GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*models.GameSession, error) {
	var row gameSessionRow
	err := pgxscan.Get(ctx, r.db, &row, getGameSessionByIDQuery, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Game session not found", zap.String("sessionID", sessionID.String()))
			return nil, interfaces.ErrNotFound
		}
		r.logger.Error("Failed to get game session", zap.Error(err), zap.String("sessionID", sessionID.String()))
		return nil, fmt.Errorf("failed to get game session %s: %w", sessionID, err)
	}
	return row.toModel()
}

// ListRecentByUserID возвращает последние сессии пользователя, новые первыми.
func (r *pgGameSessionRepository) ListRecentByUserID(ctx context.Context, userID string, limit int) ([]models.GameSession, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []gameSessionRow
	err := pgxscan.Select(ctx, r.db, &rows, listGameSessionsByUserQuery, userID, limit)
	if err != nil {
		r.logger.Error("Failed to list game sessions", zap.Error(err), zap.String("userID", userID))
		return nil, fmt.Errorf("failed to list game sessions for user %s: %w", userID, err)
	}

	sessions := make([]models.GameSession, 0, len(rows))
	for i := range rows {
		session, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, nil
}
