package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// GameFinishedPayload - событие о завершенном прохождении.
// Его потребляют внешние сервисы (уведомления, аналитика).
type GameFinishedPayload struct {
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id"`
	Won        bool      `json:"won"`
	StepsTaken int       `json:"steps_taken"`
	FinishedAt time.Time `json:"finished_at"`
}

// GameEventPublisher defines the interface for publishing game lifecycle events.
type GameEventPublisher interface {
	PublishGameFinished(ctx context.Context, payload GameFinishedPayload) error
}

// rabbitMQPublisher implements GameEventPublisher for RabbitMQ.
type rabbitMQPublisher struct {
	channel   *amqp.Channel
	queueName string
	logger    *zap.Logger
}

// NewRabbitMQGameEventPublisher creates a new publisher for the specified queue.
// Очередь объявляется здесь же, чтобы сервис не зависел от порядка запуска
// с консьюмерами. Параметры очереди должны совпадать у всех сторон.
func NewRabbitMQGameEventPublisher(conn *amqp.Connection, queueName string, logger *zap.Logger) (GameEventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("game event publisher: failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("game event publisher: failed to declare queue %s: %w", queueName, err)
	}

	return &rabbitMQPublisher{
		channel:   ch,
		queueName: queueName,
		logger:    logger.Named("GameEventPublisher"),
	}, nil
}

// PublishGameFinished отправляет событие в очередь.
func (p *rabbitMQPublisher) PublishGameFinished(ctx context.Context, payload GameFinishedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("Failed to marshal game finished payload", zap.Error(err), zap.String("sessionID", payload.SessionID))
		return fmt.Errorf("failed to marshal game finished payload: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(publishCtx,
		"",          // exchange (default)
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		p.logger.Error("Failed to publish game finished event",
			zap.Error(err),
			zap.String("sessionID", payload.SessionID),
			zap.String("queue", p.queueName),
		)
		return fmt.Errorf("failed to publish game finished event: %w", err)
	}

	p.logger.Debug("Game finished event published",
		zap.String("sessionID", payload.SessionID),
		zap.Bool("won", payload.Won),
	)
	return nil
}
