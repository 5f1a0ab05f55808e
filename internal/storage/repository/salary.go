package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/olasslabs/olass-backend/internal/models"
)

// UpsertUserSalary вставляет отправку зарплаты или, при конфликте по клиентскому
// UUID, обновляет ее на месте. Последняя запись с тем же id побеждает.
func (s *Storage) UpsertUserSalary(ctx context.Context, entry models.UserSalary) (int, error) {
	const op = "storage.UpsertUserSalary"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO user_salary (id, job_id, experience, salary)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (id) DO UPDATE
			  SET job_id = EXCLUDED.job_id,
			      experience = EXCLUDED.experience,
			      salary = EXCLUDED.salary,
			      updated_at = now()`
	result, err := s.DB.ExecContext(ctx, query,
		entry.ID, entry.JobID, entry.Experience, entry.Salary)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// GetUserSalary возвращает отправку зарплаты по клиентскому UUID.
// Если записи нет, возвращает nil без ошибки.
func (s *Storage) GetUserSalary(ctx context.Context, id uuid.UUID) (*models.UserSalary, error) {
	const op = "storage.GetUserSalary"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, job_id, experience, salary, created_at, updated_at
			  FROM user_salary
			  WHERE id = $1 AND is_deleted = false`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.UserSalary
	if err := row.Scan(&result.ID, &result.UserID, &result.JobID, &result.Experience,
		&result.Salary, &result.CreatedAt, &result.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}
