package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olasslabs/olass-backend/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListDailyProfileRows(ctx context.Context, day time.Time) ([]*models.ProfileExportRow, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProfileExportRow), args.Error(1)
}

// fakeInserter записывает чанки вместо отправки в BigQuery.
type fakeInserter struct {
	chunks  [][]profileRow
	failAt  int // номер вызова Put, который должен упасть, 0 - не падать
	calls   int
	lastErr error
}

func (f *fakeInserter) Put(_ context.Context, src any) error {
	f.calls++
	if f.failAt != 0 && f.calls == f.failAt {
		f.lastErr = errors.New("bigquery: insert failed")
		return f.lastErr
	}
	f.chunks = append(f.chunks, src.([]profileRow))
	return nil
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func makeRows(n int) []*models.ProfileExportRow {
	rows := make([]*models.ProfileExportRow, 0, n)
	for i := range n {
		userID := int64(i + 1)
		rows = append(rows, &models.ProfileExportRow{
			EventDate:  "2026-08-30",
			UserID:     &userID,
			JobGroup:   "IT",
			Job:        "Backend Developer",
			Experience: 5,
		})
	}
	return rows
}

func TestExporterService_ExportDailyProfiles(t *testing.T) {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	t.Run("строки режутся на чанки", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ListDailyProfileRows", mock.Anything, day).Return(makeRows(5), nil).Once()

		inserter := &fakeInserter{}
		svc := NewExporterService(repo, inserter, 2, newNoopLogger())

		err := svc.ExportDailyProfiles(context.Background(), day)
		require.NoError(t, err)

		require.Len(t, inserter.chunks, 3)
		assert.Len(t, inserter.chunks[0], 2)
		assert.Len(t, inserter.chunks[1], 2)
		assert.Len(t, inserter.chunks[2], 1)

		repo.AssertExpectations(t)
	})

	t.Run("пустая выборка не вызывает вставку", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ListDailyProfileRows", mock.Anything, day).Return([]*models.ProfileExportRow{}, nil).Once()

		inserter := &fakeInserter{}
		svc := NewExporterService(repo, inserter, 2, newNoopLogger())

		err := svc.ExportDailyProfiles(context.Background(), day)
		require.NoError(t, err)
		assert.Zero(t, inserter.calls)

		repo.AssertExpectations(t)
	})

	t.Run("ошибка чанка не останавливает остальные", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ListDailyProfileRows", mock.Anything, day).Return(makeRows(6), nil).Once()

		inserter := &fakeInserter{failAt: 2}
		svc := NewExporterService(repo, inserter, 2, newNoopLogger())

		err := svc.ExportDailyProfiles(context.Background(), day)
		assert.Error(t, err)
		assert.Equal(t, 3, inserter.calls)
		assert.Len(t, inserter.chunks, 2)

		repo.AssertExpectations(t)
	})

	t.Run("ошибка выборки возвращается наружу", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ListDailyProfileRows", mock.Anything, day).Return(nil, errors.New("db error")).Once()

		inserter := &fakeInserter{}
		svc := NewExporterService(repo, inserter, 2, newNoopLogger())

		err := svc.ExportDailyProfiles(context.Background(), day)
		assert.Error(t, err)
		assert.Zero(t, inserter.calls)

		repo.AssertExpectations(t)
	})
}

func TestProfileRowSave(t *testing.T) {
	userID := int64(42)
	age := 30
	saveRate := 15
	hasCar := false

	t.Run("заполненные поля уходят со значениями", func(t *testing.T) {
		row := profileRow{&models.ProfileExportRow{
			EventDate:  "2026-08-30",
			UserID:     &userID,
			JobGroup:   "IT",
			Job:        "Backend Developer",
			Experience: 5,
			Age:        &age,
			SaveRate:   &saveRate,
			HasCar:     &hasCar,
		}}

		values, insertID, err := row.Save()
		require.NoError(t, err)

		assert.Equal(t, bigquery.Value("2026-08-30"), values["event_date"])
		assert.Equal(t, bigquery.Value(int64(42)), values["user_id"])
		assert.Equal(t, bigquery.Value(30), values["age"])
		assert.Equal(t, bigquery.Value(15), values["save_rate"])
		assert.Equal(t, bigquery.Value(false), values["has_car"])
		assert.Equal(t, "2026-08-30:42", insertID)
	})

	t.Run("анонимный профиль уходит без user_id и insertID", func(t *testing.T) {
		row := profileRow{&models.ProfileExportRow{
			EventDate:  "2026-08-30",
			JobGroup:   "IT",
			Job:        "Backend Developer",
			Experience: 5,
		}}

		values, insertID, err := row.Save()
		require.NoError(t, err)

		_, hasUserID := values["user_id"]
		assert.False(t, hasUserID)
		_, hasAge := values["age"]
		assert.False(t, hasAge)
		assert.Empty(t, insertID)
	})
}
