package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"treasure-server/internal/clients"
	"treasure-server/internal/gamesession"
	sharedLogger "treasure-server/shared/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Терминальный клиент игры. Вся игровая логика живет в gamesession:
// здесь только рендеринг снапшотов состояния и чтение ввода.
func main() {
	_ = godotenv.Load()

	serverURL := os.Getenv("GAME_SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:8080"
	}

	// Логи клиента пишем в файл, чтобы не мешать игровому экрану
	logger, err := sharedLogger.New(sharedLogger.Config{
		Level:      os.Getenv("LOG_LEVEL"),
		Encoding:   "json",
		OutputPath: "play.log",
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store := gamesession.NewStore(logger)
	client := clients.NewHTTPGameServiceClient(serverURL, logger)
	controller := gamesession.NewController(store, client, logger)

	// Подписка на Store - каждый патч перерисовывает экран
	unsubscribe := store.Subscribe(func(state gamesession.GameState) {
		render(state)
	})
	defer unsubscribe()

	ctx := context.Background()
	userID := os.Getenv("GAME_USER_ID")

	if err := controller.StartGame(ctx, userID); err != nil {
		logger.Error("Initial start game failed", zap.Error(err))
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		snapshot := store.Snapshot()
		if snapshot.GameOver {
			fmt.Print("Play again? (y/n): ")
		} else {
			fmt.Print("> ")
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("\nBye!")
			return
		}
		input := strings.ToLower(strings.TrimSpace(line))
		if input == "" {
			continue
		}
		if input == "q" || input == "quit" || input == "exit" {
			fmt.Println("Bye!")
			return
		}

		if snapshot.GameOver {
			if input == "y" {
				controller.ResetGame()
				if err := controller.StartGame(ctx, userID); err != nil {
					logger.Error("Restart failed", zap.Error(err))
				}
			} else {
				fmt.Println("Bye!")
				return
			}
			continue
		}

		if err := controller.MakeChoice(ctx, input); err != nil {
			logger.Warn("Choice rejected", zap.String("choice", input), zap.Error(err))
		}
	}
}

// render рисует текущее состояние игры. Вызывается на каждый патч Store,
// в том числе на переключения IsLoading.
func render(state gamesession.GameState) {
	if state.IsLoading {
		fmt.Println("...")
		return
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))

	if state.Error != nil {
		fmt.Printf("[!] %s\n", *state.Error)
	}

	if state.AsciiArt != "" {
		fmt.Println(state.AsciiArt)
	}

	// Сообщение может быть многострочным
	for _, messageLine := range strings.Split(state.Message, "\n") {
		fmt.Println(messageLine)
	}

	if state.GameOver {
		if state.Won {
			fmt.Println()
			fmt.Println("*** YOU WON! ***")
		} else {
			fmt.Println()
			fmt.Println("--- GAME OVER ---")
		}
		fmt.Printf("Choices made: %d\n", len(state.ChoicesMade))
		return
	}

	if state.Prompt != "" {
		fmt.Println()
		fmt.Println(state.Prompt)
	}
	if len(state.Choices) > 0 {
		keys := make([]string, 0, len(state.Choices))
		for key := range state.Choices {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Printf("  [%s] %s\n", key, state.Choices[key])
		}
	}
}
