package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"treasure-server/shared/interfaces"
	"treasure-server/shared/models"

	"go.uber.org/zap"
)

// Compile-time check to ensure implementation satisfies the interface.
var _ interfaces.GameServiceClient = (*HTTPGameServiceClient)(nil)

// HTTPGameServiceClient - HTTP клиент игрового сервиса.
// Любой неуспех (сеть, не-2xx, битое тело) возвращается как ошибка без
// детализации подтипа - вызывающий слой показывает фиксированное сообщение.
type HTTPGameServiceClient struct {
	baseURL    string // Базовый URL игрового сервиса (например, "http://localhost:8080")
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPGameServiceClient creates a new HTTP client for the game service.
func NewHTTPGameServiceClient(baseURL string, logger *zap.Logger) *HTTPGameServiceClient {
	baseURL = strings.TrimSuffix(baseURL, "/")
	return &HTTPGameServiceClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger.Named("HTTPGameServiceClient"),
	}
}

// StartSession implements interfaces.GameServiceClient.
func (c *HTTPGameServiceClient) StartSession(ctx context.Context, userID string) (*models.StartGameResponse, error) {
	log := c.logger.With(zap.String("userID", userID))
	log.Debug("Starting new game session")

	requestBody := models.StartGameRequest{UserID: userID}
	var response models.StartGameResponse
	if err := c.postJSON(ctx, c.baseURL+"/api/game/start", requestBody, &response); err != nil {
		log.Error("Failed to start game session", zap.Error(err))
		return nil, err
	}

	log.Debug("Game session started", zap.String("sessionID", response.SessionID), zap.String("currentStep", response.CurrentStep))
	return &response, nil
}

// SubmitChoice implements interfaces.GameServiceClient.
func (c *HTTPGameServiceClient) SubmitChoice(ctx context.Context, sessionID, choice string) (*models.ChoiceResponse, error) {
	log := c.logger.With(zap.String("sessionID", sessionID), zap.String("choice", choice))
	log.Debug("Submitting choice")

	endpointURL := fmt.Sprintf("%s/api/game/%s/choice", c.baseURL, sessionID)
	requestBody := models.ChoiceRequest{Choice: choice}
	var response models.ChoiceResponse
	if err := c.postJSON(ctx, endpointURL, requestBody, &response); err != nil {
		log.Error("Failed to submit choice", zap.Error(err))
		return nil, err
	}

	log.Debug("Choice accepted", zap.Bool("gameOver", response.GameOver), zap.String("nextStep", response.NextStep))
	return &response, nil
}

// GetSessionStatus implements interfaces.GameServiceClient.
func (c *HTTPGameServiceClient) GetSessionStatus(ctx context.Context, sessionID string) (*models.GameStatusResponse, error) {
	log := c.logger.With(zap.String("sessionID", sessionID))
	log.Debug("Requesting game session status")

	endpointURL := fmt.Sprintf("%s/api/game/status/%s", c.baseURL, sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpointURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create GET request for game service: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	var response models.GameStatusResponse
	if err := c.do(req, &response); err != nil {
		log.Error("Failed to get game session status", zap.Error(err))
		return nil, err
	}
	return &response, nil
}

// postJSON отправляет JSON тело и декодирует JSON ответ.
func (c *HTTPGameServiceClient) postJSON(ctx context.Context, endpointURL string, body, out any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create POST request for game service: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req, out)
}

func (c *HTTPGameServiceClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request to game service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Тело ошибки не разбираем: клиентскому слою хватает самого факта неуспеха
		return fmt.Errorf("game service returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode game service response: %w", err)
	}
	return nil
}
