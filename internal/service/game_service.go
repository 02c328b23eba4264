package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"treasure-server/internal/gamelogic"
	"treasure-server/internal/messaging"
	"treasure-server/shared/interfaces"
	"treasure-server/shared/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// defaultLeaderboardLimit используется, когда клиент не указал limit.
const defaultLeaderboardLimit = 10

// GameService - сценарии использования игрового сервиса.
type GameService interface {
	// StartGame создает новую сессию и возвращает приветственный экран.
	StartGame(ctx context.Context, userID string) (*models.StartGameResponse, error)

	// MakeChoice применяет выбор игрока к его сессии.
	MakeChoice(ctx context.Context, sessionID uuid.UUID, choice string) (*models.ChoiceResponse, error)

	// GetStatus возвращает текущее состояние сессии.
	GetStatus(ctx context.Context, sessionID uuid.UUID) (*models.GameStatusResponse, error)

	// GetLeaderboard возвращает таблицу победителей.
	GetLeaderboard(ctx context.Context, limit int) (*models.LeaderboardResponse, error)
}

type gameService struct {
	sessionRepo     interfaces.GameSessionRepository
	leaderboardRepo interfaces.LeaderboardRepository
	eventPublisher  messaging.GameEventPublisher
	story           *gamelogic.Story
	logger          *zap.Logger
}

// NewGameService создает сервис с его зависимостями.
// eventPublisher может быть nil - тогда события о завершении игр не публикуются.
func NewGameService(
	sessionRepo interfaces.GameSessionRepository,
	leaderboardRepo interfaces.LeaderboardRepository,
	eventPublisher messaging.GameEventPublisher,
	logger *zap.Logger,
) GameService {
	return &gameService{
		sessionRepo:     sessionRepo,
		leaderboardRepo: leaderboardRepo,
		eventPublisher:  eventPublisher,
		story:           gamelogic.NewStory(),
		logger:          logger.Named("GameService"),
	}
}

func (s *gameService) StartGame(ctx context.Context, userID string) (*models.StartGameResponse, error) {
	session := models.NewGameSession(userID)

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create game session: %w", err)
	}

	s.logger.Info("Game session started",
		zap.String("sessionID", session.SessionID.String()),
		zap.String("userID", session.UserID),
	)

	welcome := s.story.Welcome()
	return &models.StartGameResponse{
		SessionID:   session.SessionID.String(),
		Message:     welcome.Message,
		AsciiArt:    welcome.AsciiArt,
		Prompt:      welcome.Prompt,
		Choices:     welcome.Choices,
		CurrentStep: session.CurrentStep,
	}, nil
}

func (s *gameService) MakeChoice(ctx context.Context, sessionID uuid.UUID, choice string) (*models.ChoiceResponse, error) {
	session, err := s.sessionRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, models.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load game session: %w", err)
	}

	if session.GameOver {
		return nil, models.ErrGameAlreadyOver
	}

	// Шаг фиксируется ДО применения результата - история хранит шаг,
	// с которого игрок делал выбор.
	stepBefore := session.CurrentStep
	outcome := s.story.ProcessChoice(stepBefore, choice)

	session.AddChoice(stepBefore, choice)
	session.GameOver = outcome.GameOver
	if outcome.Won {
		session.Won = true
	}
	if outcome.NextStep != "" {
		session.CurrentStep = outcome.NextStep
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save game session: %w", err)
	}

	if outcome.GameOver {
		s.finishGame(ctx, session)
	}

	return &models.ChoiceResponse{
		Success:   outcome.Success,
		Message:   outcome.Message,
		Prompt:    outcome.Prompt,
		Choices:   outcome.Choices,
		NextStep:  outcome.NextStep,
		GameOver:  outcome.GameOver,
		Won:       outcome.Won,
		SessionID: session.SessionID.String(),
	}, nil
}

// finishGame выполняет побочные эффекты завершения игры: лидерборд и событие.
// Оба эффекта некритичны для игрока, их ошибки только логируются.
func (s *gameService) finishGame(ctx context.Context, session *models.GameSession) {
	now := time.Now().UTC()

	if session.Won {
		if err := s.leaderboardRepo.RecordWin(ctx, session.UserID, now); err != nil {
			s.logger.Error("Failed to record win in leaderboard",
				zap.Error(err),
				zap.String("sessionID", session.SessionID.String()),
				zap.String("userID", session.UserID),
			)
		}
	}

	if s.eventPublisher == nil {
		return
	}
	payload := messaging.GameFinishedPayload{
		SessionID:  session.SessionID.String(),
		UserID:     session.UserID,
		Won:        session.Won,
		StepsTaken: len(session.ChoicesMade),
		FinishedAt: now,
	}
	if err := s.eventPublisher.PublishGameFinished(ctx, payload); err != nil {
		s.logger.Error("Failed to publish game finished event",
			zap.Error(err),
			zap.String("sessionID", session.SessionID.String()),
		)
	}
}

func (s *gameService) GetStatus(ctx context.Context, sessionID uuid.UUID) (*models.GameStatusResponse, error) {
	session, err := s.sessionRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, models.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load game session: %w", err)
	}

	return &models.GameStatusResponse{
		SessionID:   session.SessionID.String(),
		UserID:      session.UserID,
		CurrentStep: session.CurrentStep,
		ChoicesMade: session.ChoicesMade,
		Won:         session.Won,
		GameOver:    session.GameOver,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
	}, nil
}

func (s *gameService) GetLeaderboard(ctx context.Context, limit int) (*models.LeaderboardResponse, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	entries, err := s.leaderboardRepo.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	return &models.LeaderboardResponse{Leaderboard: entries}, nil
}
