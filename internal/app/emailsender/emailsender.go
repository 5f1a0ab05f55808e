// Package emailsender собирает и запускает приложение-потребитель писем
package emailsender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/olasslabs/olass-backend/internal/config"
	"github.com/olasslabs/olass-backend/internal/lib/smtp"
	"github.com/olasslabs/olass-backend/internal/rabbitmq"
	senderservice "github.com/olasslabs/olass-backend/internal/services/sender"
)

// App хранит зависимости приложения-отправителя
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

// New создает приложение: подключение к RabbitMQ, канал и сервис отправки
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetEmailQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	newTransport := smtp.NewTransport(cfg.SMTP, logger)
	senderService := senderservice.NewSenderService(newTransport, cfg.Jobs.UnsubscribeLink, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run запускает потребителя очереди приветственных писем и ждет завершения контекста
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.OnboardingQueue, a.senderService.SendOnboardingEmail)
	if err != nil {
		a.logger.Error("failed to start onboarding queue consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("email sender shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
