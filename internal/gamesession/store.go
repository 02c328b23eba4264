package gamesession

import (
	"sync"
	"treasure-server/shared/models"

	"go.uber.org/zap"
)

// GameState - клиентское состояние одного прохождения, видимое UI слою.
// SessionID пустой, пока игра не стартовала. Error == nil означает
// отсутствие ошибки.
type GameState struct {
	SessionID   string
	CurrentStep string
	Message     string
	Prompt      string
	Choices     map[string]string
	AsciiArt    string
	GameOver    bool
	Won         bool
	ChoicesMade []models.GameChoice
	IsLoading   bool
	Error       *string
}

func initialState() GameState {
	return GameState{
		CurrentStep: models.StepWelcome,
		Choices:     map[string]string{},
		ChoicesMade: []models.GameChoice{},
	}
}

// GameStatePatch - частичное обновление состояния.
// nil-поле не трогает текущее значение; непустой указатель / не-nil
// map / не-nil slice заменяют значение целиком. Пустая map и пустой
// slice - это именно "заменить на пустое", а не "не трогать".
type GameStatePatch struct {
	SessionID   *string
	CurrentStep *string
	Message     *string
	Prompt      *string
	Choices     map[string]string
	AsciiArt    *string
	GameOver    *bool
	Won         *bool
	ChoicesMade []models.GameChoice
}

// Subscriber получает снапшот состояния после каждой мутации.
type Subscriber func(GameState)

// Store - единственный контейнер клиентского состояния игры.
// Все мутации идут через его методы; подписчики (UI) получают
// консистентный снапшот на каждую мутацию - одна операция контроллера
// всегда выливается ровно в один патч и одно уведомление.
//
// generation растет при каждом ResetGame и при каждом патче, назначающем
// sessionId. Ответ сетевой операции применяется только если поколение,
// захваченное перед запросом, все еще актуально - так поздний ответ не
// воскрешает устаревшую сессию после сброса.
type Store struct {
	mu          sync.RWMutex
	state       GameState
	generation  uint64
	subscribers map[int]Subscriber
	nextSubID   int
	logger      *zap.Logger
}

// NewStore создает хранилище с дефолтным состоянием.
func NewStore(logger *zap.Logger) *Store {
	return &Store{
		state:       initialState(),
		subscribers: make(map[int]Subscriber),
		logger:      logger.Named("GameStore"),
	}
}

// Snapshot возвращает глубокую копию состояния.
// Изменение возвращенного значения не влияет на Store.
func (s *Store) Snapshot() GameState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyState(s.state)
}

// Generation возвращает текущее поколение сессии.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Subscribe регистрирует подписчика и возвращает функцию отписки.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// SetGameData применяет частичное обновление. Поля вне патча не меняются.
// Пустой патч - допустимый no-op (подписчики все равно уведомляются).
func (s *Store) SetGameData(patch GameStatePatch) {
	s.mu.Lock()
	s.applyPatch(patch)
	snapshot, subscribers := s.snapshotAndSubscribers()
	s.mu.Unlock()

	notify(subscribers, snapshot)
}

// CompareAndSetGameData применяет патч, только если поколение не изменилось
// с момента захвата. Возвращает false, если патч был отброшен как устаревший.
func (s *Store) CompareAndSetGameData(generation uint64, patch GameStatePatch) bool {
	s.mu.Lock()
	if s.generation != generation {
		current := s.generation
		s.mu.Unlock()
		s.logger.Debug("Discarding stale game state patch",
			zap.Uint64("patchGeneration", generation),
			zap.Uint64("currentGeneration", current),
		)
		return false
	}
	s.applyPatch(patch)
	snapshot, subscribers := s.snapshotAndSubscribers()
	s.mu.Unlock()

	notify(subscribers, snapshot)
	return true
}

// SetLoading выставляет флаг выполняющейся сетевой операции.
func (s *Store) SetLoading(isLoading bool) {
	s.mu.Lock()
	s.state.IsLoading = isLoading
	snapshot, subscribers := s.snapshotAndSubscribers()
	s.mu.Unlock()

	notify(subscribers, snapshot)
}

// SetError выставляет сообщение об ошибке.
func (s *Store) SetError(message string) {
	s.mu.Lock()
	s.state.Error = &message
	snapshot, subscribers := s.snapshotAndSubscribers()
	s.mu.Unlock()

	notify(subscribers, snapshot)
}

// ClearError сбрасывает ошибку.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.state.Error = nil
	snapshot, subscribers := s.snapshotAndSubscribers()
	s.mu.Unlock()

	notify(subscribers, snapshot)
}

// ResetGame атомарно возвращает состояние к дефолтному и поднимает поколение.
// Идемпотентен, безопасен в любой момент, в том числе при IsLoading == true:
// ответ операции, стартовавшей до сброса, будет отброшен по поколению.
func (s *Store) ResetGame() {
	s.mu.Lock()
	s.state = initialState()
	s.generation++
	snapshot, subscribers := s.snapshotAndSubscribers()
	s.mu.Unlock()

	notify(subscribers, snapshot)
}

// applyPatch мутирует состояние. Вызывается только под write-lock.
func (s *Store) applyPatch(patch GameStatePatch) {
	if patch.SessionID != nil {
		s.state.SessionID = *patch.SessionID
		// Назначение sessionId - начало новой сессии: все, что было
		// в полете до этого, больше не должно примениться.
		s.generation++
	}
	if patch.CurrentStep != nil {
		s.state.CurrentStep = *patch.CurrentStep
	}
	if patch.Message != nil {
		s.state.Message = *patch.Message
	}
	if patch.Prompt != nil {
		s.state.Prompt = *patch.Prompt
	}
	if patch.Choices != nil {
		s.state.Choices = patch.Choices
	}
	if patch.AsciiArt != nil {
		s.state.AsciiArt = *patch.AsciiArt
	}
	if patch.GameOver != nil {
		s.state.GameOver = *patch.GameOver
	}
	if patch.Won != nil {
		s.state.Won = *patch.Won
	}
	if patch.ChoicesMade != nil {
		s.state.ChoicesMade = patch.ChoicesMade
	}
}

// snapshotAndSubscribers готовит данные для уведомления. Вызывается под lock,
// сами уведомления идут уже после освобождения - иначе подписчик, читающий
// Snapshot, взял бы lock повторно.
func (s *Store) snapshotAndSubscribers() (GameState, []Subscriber) {
	snapshot := copyState(s.state)
	subscribers := make([]Subscriber, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	return snapshot, subscribers
}

func notify(subscribers []Subscriber, snapshot GameState) {
	for _, fn := range subscribers {
		fn(snapshot)
	}
}

func copyState(state GameState) GameState {
	snapshot := state
	snapshot.Choices = make(map[string]string, len(state.Choices))
	for key, label := range state.Choices {
		snapshot.Choices[key] = label
	}
	snapshot.ChoicesMade = make([]models.GameChoice, len(state.ChoicesMade))
	copy(snapshot.ChoicesMade, state.ChoicesMade)
	if state.Error != nil {
		message := *state.Error
		snapshot.Error = &message
	}
	return snapshot
}
