package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/olasslabs/olass-backend/internal/models"
)

// ListJobs возвращает все профессии из справочника.
func (s *Storage) ListJobs(ctx context.Context) ([]*models.Job, error) {
	const op = "storage.ListJobs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, group_id, name
			  FROM job
			  WHERE is_deleted = false
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Job
	for rows.Next() {
		var item models.Job
		if err := rows.Scan(&item.ID, &item.GroupID, &item.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetSalaryStat возвращает агрегат зарплат для пары (профессия, опыт).
// Если агрегата нет, возвращает nil без ошибки.
func (s *Storage) GetSalaryStat(ctx context.Context, jobID int64, experience int) (*models.SalaryStat, error) {
	const op = "storage.GetSalaryStat"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, job_id, experience, avg
			  FROM salary_stat
			  WHERE job_id = $1 AND experience = $2 AND is_deleted = false`
	row := s.DB.QueryRowContext(ctx, query, jobID, experience)

	var result models.SalaryStat
	if err := row.Scan(&result.ID, &result.JobID, &result.Experience, &result.Avg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}
