package models

import "errors"

// Сентинельные ошибки доменного слоя. Сервисный слой оборачивает их через %w,
// handler сопоставляет через errors.Is (см. internal/handler/error_handling.go).
var (
	// ErrSessionNotFound - сессия с таким session_id не существует.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrGameAlreadyOver - попытка сделать выбор в завершенной игре.
	ErrGameAlreadyOver = errors.New("game is already over")
	// ErrNoActiveSession - клиентская операция требует активной сессии.
	ErrNoActiveSession = errors.New("no active game session")
)

// Внутренние коды ошибок для ErrorResponse.
const (
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeSessionNotFound = "SESSION_NOT_FOUND"
	ErrCodeGameOver        = "GAME_OVER"
	ErrCodeInternal        = "INTERNAL_ERROR"
)

// ErrorResponse - стандартная структура для ответа об ошибке в формате JSON.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
