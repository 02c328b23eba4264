package gamesession

import (
	"context"
	"errors"
	"testing"
	"time"

	sharedMocks "treasure-server/shared/interfaces/mocks"
	"treasure-server/shared/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, 5, 17, 12, 0, 0, 0, time.UTC)

func newTestController(client *sharedMocks.GameServiceClient) (*Controller, *Store) {
	store := NewStore(zap.NewNop())
	controller := NewController(store, client, zap.NewNop())
	controller.now = func() time.Time { return fixedNow }
	return controller, store
}

func startedController(t *testing.T, client *sharedMocks.GameServiceClient) (*Controller, *Store) {
	t.Helper()
	controller, store := newTestController(client)
	client.On("StartSession", mock.Anything, "anonymous").Return(&models.StartGameResponse{
		SessionID:   "session-1",
		Message:     "WELCOME TO THE TREASURE LAND",
		Prompt:      "You are at the crossroads. Where do you want to go?",
		Choices:     map[string]string{"l": "left", "r": "right"},
		CurrentStep: models.StepWelcome,
	}, nil).Once()
	require.NoError(t, controller.StartGame(context.Background(), "anonymous"))
	return controller, store
}

func TestController_StartGame_Success(t *testing.T) {
	client := new(sharedMocks.GameServiceClient)
	controller, store := newTestController(client)

	// Флаг загрузки должен быть выставлен ДО сетевого вызова
	client.On("StartSession", mock.Anything, "anonymous").Run(func(args mock.Arguments) {
		assert.True(t, store.Snapshot().IsLoading)
	}).Return(&models.StartGameResponse{
		SessionID:   "session-1",
		Message:     "WELCOME TO THE TREASURE LAND",
		AsciiArt:    "*art*",
		Prompt:      "You are at the crossroads. Where do you want to go?",
		Choices:     map[string]string{"l": "left", "r": "right"},
		CurrentStep: models.StepWelcome,
	}, nil).Once()

	err := controller.StartGame(context.Background(), "anonymous")
	require.NoError(t, err)

	state := store.Snapshot()
	assert.Equal(t, "session-1", state.SessionID)
	assert.Equal(t, models.StepWelcome, state.CurrentStep)
	assert.Equal(t, "WELCOME TO THE TREASURE LAND", state.Message)
	assert.Equal(t, "*art*", state.AsciiArt)
	assert.Equal(t, map[string]string{"l": "left", "r": "right"}, state.Choices)
	assert.False(t, state.GameOver)
	assert.False(t, state.Won)
	assert.Empty(t, state.ChoicesMade)
	assert.False(t, state.IsLoading)
	assert.Nil(t, state.Error)
	client.AssertExpectations(t)
}

// Повторный старт поверх активной сессии полностью заменяет ее
func TestController_StartGame_ReplacesActiveSession(t *testing.T) {
	client := new(sharedMocks.GameServiceClient)
	controller, store := startedController(t, client)

	// Догоняем состояние до терминального
	store.SetGameData(GameStatePatch{
		GameOver:    ptr(true),
		Won:         ptr(true),
		ChoicesMade: []models.GameChoice{{Step: models.StepDoors, Choice: "y", Timestamp: fixedNow}},
	})

	client.On("StartSession", mock.Anything, "anonymous").Return(&models.StartGameResponse{
		SessionID:   "session-2",
		Message:     "WELCOME TO THE TREASURE LAND",
		CurrentStep: models.StepWelcome,
	}, nil).Once()

	require.NoError(t, controller.StartGame(context.Background(), "anonymous"))

	state := store.Snapshot()
	assert.Equal(t, "session-2", state.SessionID)
	assert.False(t, state.GameOver)
	assert.False(t, state.Won)
	assert.Empty(t, state.ChoicesMade, "история старой сессии не должна протекать в новую")
	client.AssertExpectations(t)
}

func TestController_StartGame_Failure(t *testing.T) {
	client := new(sharedMocks.GameServiceClient)
	controller, store := newTestController(client)

	client.On("StartSession", mock.Anything, "anonymous").Return(nil, errors.New("connection refused")).Once()

	err := controller.StartGame(context.Background(), "anonymous")
	require.Error(t, err)

	state := store.Snapshot()
	require.NotNil(t, state.Error)
	assert.Equal(t, "Failed to start game", *state.Error)
	assert.Equal(t, "", state.SessionID)
	assert.False(t, state.IsLoading)
	client.AssertExpectations(t)
}

// Сброс во время полета StartGame: поздний ответ отбрасывается по поколению
func TestController_StartGame_ResetMidFlight(t *testing.T) {
	client := new(sharedMocks.GameServiceClient)
	controller, store := newTestController(client)

	client.On("StartSession", mock.Anything, "anonymous").Run(func(args mock.Arguments) {
		controller.ResetGame()
	}).Return(&models.StartGameResponse{
		SessionID:   "session-1",
		CurrentStep: models.StepWelcome,
	}, nil).Once()

	require.NoError(t, controller.StartGame(context.Background(), "anonymous"))

	state := store.Snapshot()
	assert.Equal(t, "", state.SessionID, "устаревший ответ не должен воскресить сессию")
	assert.Equal(t, models.StepWelcome, state.CurrentStep)
	client.AssertExpectations(t)
}

func TestController_MakeChoice_NoActiveSession(t *testing.T) {
	client := new(sharedMocks.GameServiceClient)
	controller, store := newTestController(client)

	loadingChanges := 0
	store.Subscribe(func(state GameState) {
		if state.IsLoading {
			loadingChanges++
		}
	})

	err := controller.MakeChoice(context.Background(), "l")
	require.ErrorIs(t, err, models.ErrNoActiveSession)

	state := store.Snapshot()
	require.NotNil(t, state.Error)
	assert.Equal(t, "No active game session", *state.Error)
	assert.Zero(t, loadingChanges, "флаг загрузки не должен переключаться")
	client.AssertNotCalled(t, "SubmitChoice", mock.Anything, mock.Anything, mock.Anything)
}

func TestController_MakeChoice_Success(t *testing.T) {
	client := new(sharedMocks.GameServiceClient)
	controller, store := startedController(t, client)

	client.On("SubmitChoice", mock.Anything, "session-1", "l").Return(&models.ChoiceResponse{
		Success:   true,
		Message:   "Now you are at the riverside.",
		Prompt:    "Do you want to wait for the boat or swim?",
		Choices:   map[string]string{"w": "wait", "s": "swim"},
		NextStep:  models.StepRiverside,
		SessionID: "session-1",
	}, nil).Once()

	require.NoError(t, controller.MakeChoice(context.Background(), "l"))

	state := store.Snapshot()
	assert.Equal(t, models.StepRiverside, state.CurrentStep)
	assert.Equal(t, "Now you are at the riverside.", state.Message)
	require.Len(t, state.ChoicesMade, 1)
	// В историю записывается шаг, С которого делался выбор
	assert.Equal(t, models.StepWelcome, state.ChoicesMade[0].Step)
	assert.Equal(t, "l", state.ChoicesMade[0].Choice)
	assert.Equal(t, fixedNow, state.ChoicesMade[0].Timestamp)
	assert.False(t, state.IsLoading)
	assert.Nil(t, state.Error)
	client.AssertExpectations(t)
}

// Ответ без next_step и choices: игрок остается на месте, выборы пустые
func TestController_MakeChoice_OmittedNextStepAndChoices(t *testing.T) {
	client := new(sharedMocks.GameServiceClient)
	controller, store := startedController(t, client)

	client.On("SubmitChoice", mock.Anything, "session-1", "y").Return(&models.ChoiceResponse{
		Success:   true,
		Message:   "YOU WON! You found the treasure!",
		GameOver:  true,
		Won:       true,
		SessionID: "session-1",
	}, nil).Once()

	require.NoError(t, controller.MakeChoice(context.Background(), "y"))

	state := store.Snapshot()
	assert.Equal(t, models.StepWelcome, state.CurrentStep, "без next_step шаг не меняется")
	assert.NotNil(t, state.Choices)
	assert.Empty(t, state.Choices)
	assert.True(t, state.GameOver)
	assert.True(t, state.Won)
	client.AssertExpectations(t)
}

func TestController_MakeChoice_Failure(t *testing.T) {
	client := new(sharedMocks.GameServiceClient)
	controller, store := startedController(t, client)
	before := store.Snapshot()

	client.On("SubmitChoice", mock.Anything, "session-1", "l").Return(nil, errors.New("timeout")).Once()

	err := controller.MakeChoice(context.Background(), "l")
	require.Error(t, err)

	state := store.Snapshot()
	require.NotNil(t, state.Error)
	assert.Equal(t, "Failed to make choice", *state.Error)
	// Последнее хорошее состояние остается на экране
	assert.Equal(t, before.CurrentStep, state.CurrentStep)
	assert.Equal(t, before.Message, state.Message)
	assert.Empty(t, state.ChoicesMade)
	client.AssertExpectations(t)
}

// Сброс во время полета MakeChoice: история и шаг не применяются
func TestController_MakeChoice_ResetMidFlight(t *testing.T) {
	client := new(sharedMocks.GameServiceClient)
	controller, store := startedController(t, client)

	client.On("SubmitChoice", mock.Anything, "session-1", "l").Run(func(args mock.Arguments) {
		controller.ResetGame()
	}).Return(&models.ChoiceResponse{
		Success:  true,
		NextStep: models.StepRiverside,
	}, nil).Once()

	require.NoError(t, controller.MakeChoice(context.Background(), "l"))

	state := store.Snapshot()
	assert.Equal(t, "", state.SessionID)
	assert.Equal(t, models.StepWelcome, state.CurrentStep)
	assert.Empty(t, state.ChoicesMade)
	client.AssertExpectations(t)
}

func TestController_GetGameStatus_NoSessionIsNoop(t *testing.T) {
	client := new(sharedMocks.GameServiceClient)
	controller, _ := newTestController(client)

	require.NoError(t, controller.GetGameStatus(context.Background()))
	client.AssertNotCalled(t, "GetSessionStatus", mock.Anything, mock.Anything)
}

func TestController_GetGameStatus_Success(t *testing.T) {
	client := new(sharedMocks.GameServiceClient)
	controller, store := startedController(t, client)

	loadingChanges := 0
	store.Subscribe(func(state GameState) {
		if state.IsLoading {
			loadingChanges++
		}
	})

	client.On("GetSessionStatus", mock.Anything, "session-1").Return(&models.GameStatusResponse{
		SessionID:   "session-1",
		CurrentStep: models.StepDoors,
		ChoicesMade: []models.GameChoice{
			{Step: models.StepWelcome, Choice: "l", Timestamp: fixedNow},
			{Step: models.StepRiverside, Choice: "w", Timestamp: fixedNow},
		},
		GameOver: false,
		Won:      false,
	}, nil).Once()

	require.NoError(t, controller.GetGameStatus(context.Background()))

	state := store.Snapshot()
	assert.Equal(t, models.StepDoors, state.CurrentStep)
	assert.Len(t, state.ChoicesMade, 2)
	assert.Zero(t, loadingChanges, "поллинг не должен блокировать UI флагом загрузки")
	client.AssertExpectations(t)
}

func TestController_GetGameStatus_Failure(t *testing.T) {
	client := new(sharedMocks.GameServiceClient)
	controller, store := startedController(t, client)

	client.On("GetSessionStatus", mock.Anything, "session-1").Return(nil, errors.New("boom")).Once()

	err := controller.GetGameStatus(context.Background())
	require.Error(t, err)

	state := store.Snapshot()
	require.NotNil(t, state.Error)
	assert.Equal(t, "Failed to get game status", *state.Error)
	client.AssertExpectations(t)
}

func TestController_ResetGame(t *testing.T) {
	client := new(sharedMocks.GameServiceClient)
	controller, store := startedController(t, client)

	controller.ResetGame()

	state := store.Snapshot()
	assert.Equal(t, "", state.SessionID)
	assert.Equal(t, models.StepWelcome, state.CurrentStep)
}
