// Package services содержит дневную выгрузку профилей в BigQuery:
// строки за прошедший день читаются из PostgreSQL, режутся на чанки
// и вставляются в аналитическую таблицу.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/olasslabs/olass-backend/internal/lib/sl"
	"github.com/olasslabs/olass-backend/internal/models"
)

// ExportRepository определяет выборку строк дневной выгрузки.
type ExportRepository interface {
	ListDailyProfileRows(ctx context.Context, day time.Time) ([]*models.ProfileExportRow, error)
}

// Inserter описывает вставку строк в аналитическую таблицу.
// Реализуется *bigquery.Inserter.
type Inserter interface {
	Put(ctx context.Context, src any) error
}

// ExporterService реализует дневную выгрузку профилей.
type ExporterService struct {
	repo      ExportRepository
	inserter  Inserter
	chunkSize int
	log       *slog.Logger
}

// NewExporterService создает новый экземпляр ExporterService.
func NewExporterService(repo ExportRepository, inserter Inserter, chunkSize int, log *slog.Logger) *ExporterService {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	return &ExporterService{
		repo:      repo,
		inserter:  inserter,
		chunkSize: chunkSize,
		log:       log,
	}
}

// ExportDailyProfiles выгружает профили, измененные в указанный день.
// Чанки вставляются независимо: ошибка одного не останавливает остальные,
// возвращается первая встреченная.
func (s *ExporterService) ExportDailyProfiles(ctx context.Context, day time.Time) error {
	rows, err := s.repo.ListDailyProfileRows(ctx, day)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		s.log.Info("no profile rows to export", slog.String("day", day.Format("2006-01-02")))
		return nil
	}

	var firstErr error
	total := 0
	for i := 0; i < len(rows); i += s.chunkSize {
		end := min(i+s.chunkSize, len(rows))
		chunk := make([]profileRow, 0, end-i)
		for _, row := range rows[i:end] {
			chunk = append(chunk, profileRow{row})
		}

		if err := s.inserter.Put(ctx, chunk); err != nil {
			s.log.Error("failed to insert chunk", slog.Int("offset", i), sl.Err(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		total += len(chunk)
	}

	s.log.Info("profile export finished",
		slog.String("day", day.Format("2006-01-02")),
		slog.Int("inserted", total), slog.Int("total", len(rows)))
	return firstErr
}

// profileRow адаптирует строку выгрузки под bigquery.ValueSaver,
// чтобы NULL-поля уходили как NULL, а не через вывод схемы по указателям.
type profileRow struct {
	row *models.ProfileExportRow
}

func (p profileRow) Save() (map[string]bigquery.Value, string, error) {
	r := p.row
	values := map[string]bigquery.Value{
		"event_date": r.EventDate,
		"job_group":  r.JobGroup,
		"job":        r.Job,
		"experience": r.Experience,
	}
	if r.UserID != nil {
		values["user_id"] = *r.UserID
	}
	if r.Age != nil {
		values["age"] = *r.Age
	}
	if r.SaveRate != nil {
		values["save_rate"] = *r.SaveRate
	}
	if r.HasCar != nil {
		values["has_car"] = *r.HasCar
	}
	if r.MonthlyRent != nil {
		values["monthly_rent"] = *r.MonthlyRent
	}

	insertID := ""
	if r.UserID != nil {
		insertID = fmt.Sprintf("%s:%d", r.EventDate, *r.UserID)
	}
	return values, insertID, nil
}
