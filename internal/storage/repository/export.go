package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/olasslabs/olass-backend/internal/models"
)

// ListDailyProfileRows возвращает строки для дневной выгрузки в BigQuery:
// профили, созданные, обновленные или удаленные в указанный день,
// вместе со справочными данными профессии.
func (s *Storage) ListDailyProfileRows(ctx context.Context, day time.Time) ([]*models.ProfileExportRow, error) {
	const op = "storage.ListDailyProfileRows"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT us.user_id, jg.name, j.name, us.experience,
			      up.age, up.save_rate, up.has_car, up.is_monthly_rent
			  FROM user_profile up
			  JOIN user_salary us ON us.id = up.salary_id
			  JOIN job j ON j.id = us.job_id
			  JOIN job_group jg ON jg.id = j.group_id
			  WHERE up.created_at::date = $1::date
			     OR up.updated_at::date = $1::date
			     OR up.deleted_at::date = $1::date`
	rows, err := s.DB.QueryContext(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	eventDate := day.Format("2006-01-02")
	var result []*models.ProfileExportRow
	for rows.Next() {
		var item models.ProfileExportRow
		if err := rows.Scan(&item.UserID, &item.JobGroup, &item.Job, &item.Experience,
			&item.Age, &item.SaveRate, &item.HasCar, &item.MonthlyRent); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.EventDate = eventDate
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListOnboardingRecipients возвращает пользователей с действующим маркетинговым
// согласием, которым еще не отправлено приветственное письмо.
func (s *Storage) ListOnboardingRecipients(ctx context.Context) ([]*models.OnboardingRecipient, error) {
	const op = "storage.ListOnboardingRecipients"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.id, u.email
			  FROM users u
			  JOIN user_consent uc ON uc.user_id = u.id
			  WHERE uc.event = $1
			    AND uc.agree = true
			    AND u.welcomed_at IS NULL
			    AND u.is_deleted = false`
	rows, err := s.DB.QueryContext(ctx, query, models.ConsentEventMarketing)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.OnboardingRecipient
	for rows.Next() {
		var item models.OnboardingRecipient
		if err := rows.Scan(&item.UserID, &item.Email); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// MarkUsersWelcomed помечает пользователей как получивших приветственное письмо.
func (s *Storage) MarkUsersWelcomed(ctx context.Context, userIDs []int64) error {
	const op = "storage.MarkUsersWelcomed"
	if len(userIDs) == 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET welcomed_at = now(), updated_at = now()
			  WHERE id = ANY($1)`
	if _, err := s.DB.ExecContext(ctx, query, userIDs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
