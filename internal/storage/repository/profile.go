package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/olasslabs/olass-backend/internal/models"
)

// UpsertUserProfile вставляет профиль потребления или, при конфликте по
// salary_id, обновляет его на месте. На одну отправку зарплаты приходится
// не более одного профиля.
func (s *Storage) UpsertUserProfile(ctx context.Context, profile models.UserProfile) (int, error) {
	const op = "storage.UpsertUserProfile"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO user_profile (salary_id, age, save_rate, has_car, is_monthly_rent)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (salary_id) DO UPDATE
			  SET age = EXCLUDED.age,
			      save_rate = EXCLUDED.save_rate,
			      has_car = EXCLUDED.has_car,
			      is_monthly_rent = EXCLUDED.is_monthly_rent,
			      updated_at = now()`
	result, err := s.DB.ExecContext(ctx, query,
		profile.SalaryID, profile.Age, profile.SaveRate, profile.HasCar, profile.IsMonthlyRent)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// GetUserProfile возвращает профиль по UUID отправки зарплаты.
// Если профиля нет, возвращает nil без ошибки.
func (s *Storage) GetUserProfile(ctx context.Context, salaryID uuid.UUID) (*models.UserProfile, error) {
	const op = "storage.GetUserProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, salary_id, age, save_rate, has_car, is_monthly_rent
			  FROM user_profile
			  WHERE salary_id = $1 AND is_deleted = false`
	row := s.DB.QueryRowContext(ctx, query, salaryID)

	var result models.UserProfile
	if err := row.Scan(&result.ID, &result.SalaryID, &result.Age, &result.SaveRate,
		&result.HasCar, &result.IsMonthlyRent); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}
