package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"treasure-server/shared/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// @Summary Начать новую игру
// @Description Создает новую игровую сессию и возвращает приветственный экран
// @Tags game
// @Accept json
// @Produce json
// @Param request body models.StartGameRequest false "Необязательный идентификатор пользователя"
// @Success 200 {object} models.StartGameResponse
// @Failure 400 {object} models.ErrorResponse "Неверное тело запроса"
// @Router /api/game/start [post]
func (h *GameHandler) startGame(c *gin.Context) {
	// Тело необязательное: пустой POST равнозначен анонимному старту
	var req models.StartGameRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.service.StartGame(c.Request.Context(), req.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	gamesStartedTotal.Inc()

	c.JSON(http.StatusOK, resp)
}

// @Summary Сделать выбор
// @Description Применяет выбор игрока к сессии и возвращает следующий экран
// @Tags game
// @Accept json
// @Produce json
// @Param session_id path string true "ID сессии"
// @Param request body models.ChoiceRequest true "Выбор игрока"
// @Success 200 {object} models.ChoiceResponse
// @Failure 400 {object} models.ErrorResponse "Неверный запрос или игра уже окончена"
// @Failure 404 {object} models.ErrorResponse "Сессия не найдена"
// @Router /api/game/{session_id}/choice [post]
func (h *GameHandler) makeChoice(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid session_id format"})
		return
	}

	var req models.ChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.service.MakeChoice(c.Request.Context(), sessionID, req.Choice)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	choicesMadeTotal.Inc()
	if resp.GameOver {
		outcome := "lost"
		if resp.Won {
			outcome = "won"
		}
		gamesFinishedTotal.WithLabelValues(outcome).Inc()
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Статус игры
// @Description Возвращает текущее состояние сессии и историю выборов
// @Tags game
// @Produce json
// @Param session_id path string true "ID сессии"
// @Success 200 {object} models.GameStatusResponse
// @Failure 404 {object} models.ErrorResponse "Сессия не найдена"
// @Router /api/game/status/{session_id} [get]
func (h *GameHandler) getStatus(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid session_id format"})
		return
	}

	resp, err := h.service.GetStatus(c.Request.Context(), sessionID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Таблица победителей
// @Description Возвращает лучших игроков по числу побед
// @Tags game
// @Produce json
// @Param limit query int false "Максимум записей (по умолчанию 10)"
// @Success 200 {object} models.LeaderboardResponse
// @Router /api/game/leaderboard [get]
func (h *GameHandler) getLeaderboard(c *gin.Context) {
	limit := 0
	if rawLimit := c.Query("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	resp, err := h.service.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
