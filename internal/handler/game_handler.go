package handler

import (
	"treasure-server/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GameHandler обрабатывает HTTP запросы игрового API.
type GameHandler struct {
	service service.GameService
	logger  *zap.Logger
}

// NewGameHandler создает новый GameHandler.
func NewGameHandler(s service.GameService, logger *zap.Logger) *GameHandler {
	return &GameHandler{
		service: s,
		logger:  logger.Named("GameHandler"),
	}
}

// RegisterRoutes регистрирует маршруты игрового API.
// rateLimiters навешиваются только на создание сессий - остальные
// эндпоинты дешевые и нужны для поллинга.
func (h *GameHandler) RegisterRoutes(router *gin.Engine, rateLimiters ...gin.HandlerFunc) {
	gameGroup := router.Group("/api/game")
	{
		startHandlers := append(append([]gin.HandlerFunc{}, rateLimiters...), h.startGame)
		gameGroup.POST("/start", startHandlers...)
		gameGroup.POST("/:session_id/choice", h.makeChoice)
		gameGroup.GET("/status/:session_id", h.getStatus)
		gameGroup.GET("/leaderboard", h.getLeaderboard)
	}
}
