package models

import (
	"time"

	"github.com/google/uuid"
)

// Имена шагов истории. Совпадают со значениями колонки current_step в БД
// и со значениями current_step/next_step в API.
const (
	StepWelcome    = "welcome"
	StepCrossroads = "crossroads"
	StepRiverside  = "riverside"
	StepDoors      = "doors"
)

// DefaultUserID используется, когда клиент не передал user_id при старте игры.
const DefaultUserID = "anonymous"

// GameChoice - одна запись истории выборов игрока.
// Step хранит шаг, НА котором игрок делал выбор, а не шаг-результат.
type GameChoice struct {
	Step      string    `json:"step" db:"step"`
	Choice    string    `json:"choice" db:"choice"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

// GameSession представляет одно прохождение игры на стороне сервера.
// Запись создается при старте игры и живет до конца прохождения.
type GameSession struct {
	SessionID   uuid.UUID    `json:"session_id" db:"session_id"`
	UserID      string       `json:"user_id" db:"user_id"`
	CurrentStep string       `json:"current_step" db:"current_step"`
	ChoicesMade []GameChoice `json:"choices_made" db:"choices_made"` // jsonb в БД
	Won         bool         `json:"won" db:"won"`
	GameOver    bool         `json:"game_over" db:"game_over"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// NewGameSession создает новую сессию с дефолтными полями (шаг welcome).
func NewGameSession(userID string) *GameSession {
	if userID == "" {
		userID = DefaultUserID
	}
	now := time.Now().UTC()
	return &GameSession{
		SessionID:   uuid.New(),
		UserID:      userID,
		CurrentStep: StepWelcome,
		ChoicesMade: []GameChoice{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AddChoice добавляет запись в историю выборов. Step фиксируется ДО перехода.
func (s *GameSession) AddChoice(step, choice string) {
	s.ChoicesMade = append(s.ChoicesMade, GameChoice{
		Step:      step,
		Choice:    choice,
		Timestamp: time.Now().UTC(),
	})
}
