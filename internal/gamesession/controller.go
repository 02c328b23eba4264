package gamesession

import (
	"context"
	"fmt"
	"time"
	"treasure-server/shared/interfaces"
	"treasure-server/shared/models"

	"go.uber.org/zap"
)

// Фиксированные сообщения для пользователя. Подтипы ошибок сервиса
// здесь не различаются: любой транспортный неуспех выглядит одинаково.
const (
	errMsgStartGameFailed  = "Failed to start game"
	errMsgMakeChoiceFailed = "Failed to make choice"
	errMsgGameStatusFailed = "Failed to get game status"
	errMsgNoActiveSession  = "No active game session"
)

// Controller переводит намерения пользователя в вызовы игрового сервиса
// и детерминированные обновления Store. Вся семантика загрузки и ошибок
// живет здесь; Store ничего не валидирует.
//
// Контроллер - единственный писатель Store. Одновременно логически
// выполняется не больше одной операции: UI обязан блокировать ввод,
// пока IsLoading == true.
type Controller struct {
	store  *Store
	client interfaces.GameServiceClient
	logger *zap.Logger
	now    func() time.Time // подменяется в тестах
}

// NewController создает контроллер сессии.
func NewController(store *Store, client interfaces.GameServiceClient, logger *zap.Logger) *Controller {
	return &Controller{
		store:  store,
		client: client,
		logger: logger.Named("SessionController"),
		now:    time.Now,
	}
}

// Store возвращает хранилище для подписки UI слоя.
func (c *Controller) Store() *Store {
	return c.store
}

// StartGame начинает новое прохождение. Повторный вызов поверх активной
// сессии полностью заменяет ее: история и терминальные флаги старой
// сессии не протекают в новую.
func (c *Controller) StartGame(ctx context.Context, userID string) error {
	c.store.ClearError()
	// Флаг загрузки выставляется синхронно, ДО сетевого вызова -
	// это единственный backpressure против двойного клика.
	c.store.SetLoading(true)
	defer c.store.SetLoading(false)

	generation := c.store.Generation()
	resp, err := c.client.StartSession(ctx, userID)
	if err != nil {
		c.store.SetError(errMsgStartGameFailed)
		return fmt.Errorf("start game: %w", err)
	}

	choices := resp.Choices
	if choices == nil {
		choices = map[string]string{}
	}

	applied := c.store.CompareAndSetGameData(generation, GameStatePatch{
		SessionID:   ptr(resp.SessionID),
		CurrentStep: ptr(resp.CurrentStep),
		Message:     ptr(resp.Message),
		Prompt:      ptr(resp.Prompt),
		Choices:     choices,
		AsciiArt:    ptr(resp.AsciiArt),
		GameOver:    ptr(false),
		Won:         ptr(false),
		ChoicesMade: []models.GameChoice{},
	})
	if !applied {
		c.logger.Debug("Stale start game response discarded", zap.String("sessionID", resp.SessionID))
	}
	return nil
}

// MakeChoice отправляет выбор игрока в рамках активной сессии.
// Без активной сессии - ошибка в Store, ни сетевого вызова, ни смены
// флага загрузки.
func (c *Controller) MakeChoice(ctx context.Context, choice string) error {
	snapshot := c.store.Snapshot()
	if snapshot.SessionID == "" {
		c.store.SetError(errMsgNoActiveSession)
		return models.ErrNoActiveSession
	}

	c.store.ClearError()
	c.store.SetLoading(true)
	defer c.store.SetLoading(false)

	generation := c.store.Generation()
	resp, err := c.client.SubmitChoice(ctx, snapshot.SessionID, choice)
	if err != nil {
		// Шаг/сообщение/выборы не трогаем: UI продолжает показывать
		// последнее хорошее состояние с ошибкой поверх
		c.store.SetError(errMsgMakeChoiceFailed)
		return fmt.Errorf("make choice: %w", err)
	}

	choices := resp.Choices
	if choices == nil {
		choices = map[string]string{}
	}
	// Сервис может не прислать next_step - это совместимый ответ
	// "остаешься на месте", а не ошибка
	nextStep := resp.NextStep
	if nextStep == "" {
		nextStep = snapshot.CurrentStep
	}

	// В историю пишется шаг, С которого игрок делал выбор
	history := make([]models.GameChoice, 0, len(snapshot.ChoicesMade)+1)
	history = append(history, snapshot.ChoicesMade...)
	history = append(history, models.GameChoice{
		Step:      snapshot.CurrentStep,
		Choice:    choice,
		Timestamp: c.now().UTC(),
	})

	// Все поля ответа и запись истории применяются одним патчем:
	// подписчик никогда не увидит новое сообщение без новой истории
	applied := c.store.CompareAndSetGameData(generation, GameStatePatch{
		CurrentStep: ptr(nextStep),
		Message:     ptr(resp.Message),
		Prompt:      ptr(resp.Prompt),
		Choices:     choices,
		GameOver:    ptr(resp.GameOver),
		Won:         ptr(resp.Won),
		ChoicesMade: history,
	})
	if !applied {
		c.logger.Debug("Stale choice response discarded",
			zap.String("sessionID", snapshot.SessionID),
			zap.String("choice", choice),
		)
	}
	return nil
}

// GetGameStatus - легковесный поллинг состояния сессии.
// Не трогает IsLoading: UI не должен блокировать ввод на время опроса.
// Без активной сессии - тихий no-op.
func (c *Controller) GetGameStatus(ctx context.Context) error {
	snapshot := c.store.Snapshot()
	if snapshot.SessionID == "" {
		return nil
	}

	generation := c.store.Generation()
	resp, err := c.client.GetSessionStatus(ctx, snapshot.SessionID)
	if err != nil {
		c.store.SetError(errMsgGameStatusFailed)
		return fmt.Errorf("get game status: %w", err)
	}

	choicesMade := resp.ChoicesMade
	if choicesMade == nil {
		choicesMade = []models.GameChoice{}
	}

	applied := c.store.CompareAndSetGameData(generation, GameStatePatch{
		CurrentStep: ptr(resp.CurrentStep),
		GameOver:    ptr(resp.GameOver),
		Won:         ptr(resp.Won),
		ChoicesMade: choicesMade,
	})
	if !applied {
		c.logger.Debug("Stale status response discarded", zap.String("sessionID", snapshot.SessionID))
	}
	return nil
}

// ResetGame возвращает состояние к дефолтному. Делегирует Store напрямую,
// никакой дополнительной логики - безопасен даже при операции в полете.
func (c *Controller) ResetGame() {
	c.store.ResetGame()
}

func ptr[T any](v T) *T {
	return &v
}
