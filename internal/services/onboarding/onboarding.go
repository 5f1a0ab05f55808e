// Package services содержит рассылку приветственных писем: находит
// пользователей с маркетинговым согласием без отправленного письма
// и публикует задания в очередь для воркера-отправителя.
package services

import (
	"context"
	"log/slog"

	"github.com/olasslabs/olass-backend/internal/lib/sl"
	"github.com/olasslabs/olass-backend/internal/models"
)

// OnboardingRepository определяет выборку адресатов и отметку отправки.
type OnboardingRepository interface {
	ListOnboardingRecipients(ctx context.Context) ([]*models.OnboardingRecipient, error)
	MarkUsersWelcomed(ctx context.Context, userIDs []int64) error
}

// Publisher публикует задание в очередь рассылки.
type Publisher interface {
	Publish(exchange, routingKey string, message any) error
}

// OnboardingService реализует диспетчеризацию приветственных писем.
type OnboardingService struct {
	repo      OnboardingRepository
	publisher Publisher
	log       *slog.Logger
}

// NewOnboardingService создает новый экземпляр OnboardingService.
func NewOnboardingService(repo OnboardingRepository, publisher Publisher, log *slog.Logger) *OnboardingService {
	return &OnboardingService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// DispatchOnboardingEmails публикует по заданию на каждого адресата
// и помечает успешно опубликованных, чтобы письмо не ушло повторно.
func (s *OnboardingService) DispatchOnboardingEmails(ctx context.Context) error {
	recipients, err := s.repo.ListOnboardingRecipients(ctx)
	if err != nil {
		s.log.Error("failed to list onboarding recipients", sl.Err(err))
		return err
	}
	if len(recipients) == 0 {
		s.log.Info("no onboarding recipients found")
		return nil
	}
	s.log.Info("found onboarding recipients", slog.Int("count", len(recipients)))

	published := make([]int64, 0, len(recipients))
	for _, recipient := range recipients {
		if err := s.publisher.Publish("emails", "onboarding", recipient); err != nil {
			s.log.Error("failed to publish onboarding task",
				slog.String("email", recipient.Email), sl.Err(err))
			continue
		}
		published = append(published, recipient.UserID)
	}

	if err := s.repo.MarkUsersWelcomed(ctx, published); err != nil {
		s.log.Error("failed to mark users welcomed", sl.Err(err))
		return err
	}
	return nil
}
