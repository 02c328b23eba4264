package gamelogic

import (
	"strings"
	"treasure-server/shared/models"
)

// StepData описывает один экран истории: текст, подсказку и доступные выборы.
type StepData struct {
	Message  string
	AsciiArt string
	Prompt   string
	Choices  map[string]string
}

// Outcome - результат обработки одного выбора игрока.
// NextStep пустой, если игрок остается на месте или игра закончилась.
type Outcome struct {
	Success  bool
	NextStep string
	Message  string
	Prompt   string
	Choices  map[string]string
	GameOver bool
	Won      bool
}

// Story - фиксированное дерево сюжета "Treasure Land".
// Контент статический, никакой генерации: welcome -> crossroads -> riverside -> doors.
type Story struct {
	steps map[string]StepData
}

// NewStory создает сюжет со всеми шагами.
func NewStory() *Story {
	return &Story{
		steps: map[string]StepData{
			models.StepWelcome: {
				Message:  "WELCOME TO THE TREASURE LAND\nYour mission is to find the treasure",
				AsciiArt: TreasureArt,
				Prompt:   "You are at the crossroads. Where do you want to go?",
				Choices:  map[string]string{"l": "left", "r": "right"},
			},
			models.StepCrossroads: {
				Message: "You are at the crossroads. Where do you want to go?",
				Choices: map[string]string{"l": "left", "r": "right"},
			},
			models.StepRiverside: {
				Message: "Woooho! You are now redirected to the next step. By choosing left side you have been saved from falling into the hole.\nNow you are at the riverside. What would you do next?",
				Prompt:  "Do you want to wait for the boat or swim to the next bank of river?",
				Choices: map[string]string{"w": "wait", "s": "swim"},
			},
			models.StepDoors: {
				Message: "Woooho! You are at the next level.\nNow there are three doors of three different colors: Red, Green and Yellow",
				Prompt:  "Which door do you choose?",
				Choices: map[string]string{"r": "red", "g": "green", "y": "yellow"},
			},
		},
	}
}

// Step возвращает данные шага по имени.
func (s *Story) Step(name string) (StepData, bool) {
	step, ok := s.steps[name]
	return step, ok
}

// Welcome возвращает приветственный шаг (первый экран любой сессии).
func (s *Story) Welcome() StepData {
	return s.steps[models.StepWelcome]
}

// ProcessChoice обрабатывает выбор игрока на текущем шаге.
// Выбор нечувствителен к регистру. Неизвестный выбор заканчивает игру,
// неизвестный шаг тоже - сервер не доверяет состоянию слепо.
func (s *Story) ProcessChoice(currentStep, choice string) Outcome {
	choice = strings.ToLower(choice)

	switch currentStep {
	case models.StepWelcome, models.StepCrossroads:
		switch choice {
		case "l":
			riverside := s.steps[models.StepRiverside]
			return Outcome{
				Success:  true,
				NextStep: models.StepRiverside,
				Message:  riverside.Message,
				Prompt:   riverside.Prompt,
				Choices:  riverside.Choices,
			}
		case "r":
			return Outcome{
				Message:  "You fall into the hole\nSo the game is over now as you are no more in the game. Try again next time!",
				GameOver: true,
			}
		default:
			return invalidChoiceOutcome()
		}

	case models.StepRiverside:
		switch choice {
		case "w":
			doors := s.steps[models.StepDoors]
			return Outcome{
				Success:  true,
				NextStep: models.StepDoors,
				Message:  doors.Message,
				Prompt:   doors.Prompt,
				Choices:  doors.Choices,
			}
		case "s":
			return Outcome{
				Message:  "Sorry, You have got attacked by the crocodiles that are in the river\nSo the Game is over now as you are no more in the game. Try again next time!",
				GameOver: true,
			}
		default:
			return invalidChoiceOutcome()
		}

	case models.StepDoors:
		switch choice {
		case "y":
			return Outcome{
				Success:  true,
				Message:  "YOU WON! You found the treasure!\nYou find the treasure as the yellow color is the significance of the treasure",
				GameOver: true,
				Won:      true,
			}
		case "r":
			return Outcome{
				Message:  "Ohoo! You got burned by the fire as the red symbol is the significance of Danger\nGame Over",
				GameOver: true,
			}
		case "g":
			return Outcome{
				Message:  "Game Over",
				GameOver: true,
			}
		default:
			return invalidChoiceOutcome()
		}
	}

	return Outcome{
		Message:  "Invalid game state. Game Over!",
		GameOver: true,
	}
}

func invalidChoiceOutcome() Outcome {
	return Outcome{
		Message:  "Invalid choice. Game Over!",
		GameOver: true,
	}
}
