// Package services содержит бизнес-логику ленивого создания пользователя:
// привязку ранее отправленной зарплаты к новой учетной записи вместе
// с записью маркетингового согласия.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/olasslabs/olass-backend/internal/domain"
	"github.com/olasslabs/olass-backend/internal/models"
	"github.com/olasslabs/olass-backend/internal/storage/repository"
)

// UserRepository определяет методы хранилища для привязки пользователя.
type UserRepository interface {
	// GetUserSalary возвращает отправку по клиентскому UUID, nil если записи нет.
	GetUserSalary(ctx context.Context, id uuid.UUID) (*models.UserSalary, error)
	// LinkUserWithConsent создает пользователя, согласие и привязку в одной транзакции.
	LinkUserWithConsent(ctx context.Context, salaryID uuid.UUID, email string, agree bool) (int64, error)
}

// UserService реализует привязку отправки зарплаты к пользователю.
type UserService struct {
	repo UserRepository
	log  *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, log *slog.Logger) *UserService {
	return &UserService{
		repo: repo,
		log:  log,
	}
}

// SaveUserWithMarketing создает пользователя по email, записывает маркетинговое
// согласие и привязывает отправку зарплаты к новому пользователю. Запись,
// уже привязанная к пользователю, повторно не привязывается.
func (s *UserService) SaveUserWithMarketing(ctx context.Context, req models.DummyEmail) (int64, error) {
	uid, err := uuid.Parse(req.UniqueID)
	if err != nil {
		return 0, fmt.Errorf("invalid unique id: %w", err)
	}

	salary, err := s.repo.GetUserSalary(ctx, uid)
	if err != nil {
		return 0, err
	}
	if salary == nil {
		return 0, domain.ErrSalaryNotFound
	}
	if salary.UserID != nil {
		return 0, domain.ErrSalaryAlreadyLinked
	}

	userID, err := s.repo.LinkUserWithConsent(ctx, uid, req.Email, req.Agree)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserInsert):
			return 0, domain.ErrUserCreationFailed
		case errors.Is(err, repository.ErrConsentInsert):
			return 0, domain.ErrConsentCreationFailed
		case errors.Is(err, repository.ErrSalaryLinked):
			return 0, domain.ErrSalaryAlreadyLinked
		default:
			return 0, err
		}
	}

	s.log.Info("linked salary submission to new user",
		slog.String("unique_id", uid.String()), slog.Int64("user_id", userID))
	return userID, nil
}
