package models

import "time"

// DTO для HTTP API игрового сервиса: start/choice/status/leaderboard.
// Необязательные поля помечены omitempty, клиент обязан переживать
// их отсутствие (см. gamesession.Controller).

// StartGameRequest - тело запроса POST /api/game/start.
type StartGameRequest struct {
	UserID string `json:"user_id,omitempty"`
}

// StartGameResponse - ответ на старт новой сессии.
type StartGameResponse struct {
	SessionID   string            `json:"session_id"`
	Message     string            `json:"message"`
	AsciiArt    string            `json:"ascii_art"`
	Prompt      string            `json:"prompt"`
	Choices     map[string]string `json:"choices"`
	CurrentStep string            `json:"current_step"`
}

// ChoiceRequest - тело запроса POST /api/game/:session_id/choice.
type ChoiceRequest struct {
	Choice string `json:"choice" binding:"required"`
}

// ChoiceResponse - ответ на выбор игрока.
// next_step может отсутствовать: тогда клиент остается на текущем шаге.
// choices может отсутствовать: тогда у шага нет универсальных кнопок выбора.
type ChoiceResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Prompt    string            `json:"prompt,omitempty"`
	Choices   map[string]string `json:"choices,omitempty"`
	NextStep  string            `json:"next_step,omitempty"`
	GameOver  bool              `json:"game_over"`
	Won       bool              `json:"won"`
	SessionID string            `json:"session_id"`
}

// GameStatusResponse - ответ GET /api/game/status/:session_id.
type GameStatusResponse struct {
	SessionID   string       `json:"session_id"`
	UserID      string       `json:"user_id"`
	CurrentStep string       `json:"current_step"`
	ChoicesMade []GameChoice `json:"choices_made"`
	Won         bool         `json:"won"`
	GameOver    bool         `json:"game_over"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// LeaderboardEntry - одна строка таблицы победителей.
type LeaderboardEntry struct {
	UserID  string    `json:"user_id"`
	Wins    int64     `json:"wins"`
	LastWin time.Time `json:"last_win"`
}

// LeaderboardResponse - ответ GET /api/game/leaderboard.
type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}
