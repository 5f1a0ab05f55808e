package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/olasslabs/olass-backend/internal/models"
)

// Ошибки отдельных шагов привязки, по ним сервис различает причину отказа.
var (
	ErrUserInsert    = errors.New("failed to insert user")
	ErrConsentInsert = errors.New("failed to insert consent")
	ErrSalaryLinked  = errors.New("salary already linked to a user")
)

// LinkUserWithConsent создает пользователя, запись согласия и привязывает
// отправку зарплаты к новому пользователю. Все три записи выполняются
// в одной транзакции: либо видны все, либо ни одной.
func (s *Storage) LinkUserWithConsent(ctx context.Context, salaryID uuid.UUID, email string, agree bool) (int64, error) {
	const op = "storage.LinkUserWithConsent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var userID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (email) VALUES ($1) RETURNING id`, email).Scan(&userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %w", op, ErrUserInsert, err)
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO user_consent (user_id, event, agree) VALUES ($1, $2, $3)`,
		userID, models.ConsentEventMarketing, agree)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %w", op, ErrConsentInsert, err)
	}
	if n, err := result.RowsAffected(); err != nil || n == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrConsentInsert)
	}

	result, err = tx.ExecContext(ctx,
		`UPDATE user_salary SET user_id = $1, updated_at = now()
		 WHERE id = $2 AND user_id IS NULL`, userID, salaryID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		// Запись успели привязать параллельным запросом.
		return 0, fmt.Errorf("%s: %w", op, ErrSalaryLinked)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return userID, nil
}
