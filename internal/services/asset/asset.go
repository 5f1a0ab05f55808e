// Package services содержит бизнес-логику зарплатного сравнения:
// справочник профессий с кешированием, идемпотентное сохранение отправок
// и расчет ранга и перцентиля по накопленным активам.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/olasslabs/olass-backend/internal/domain"
	"github.com/olasslabs/olass-backend/internal/lib/sl"
	"github.com/olasslabs/olass-backend/internal/models"
)

// SalaryScale коэффициент нормализации: зарплата приходит в тысячах вон,
// хранится в вонах.
const SalaryScale = 10000

const (
	jobsCacheKey = "asset:jobs"
	jobsCacheTTL = time.Hour
)

// Фиксированные ранги "какая машина по карману" по накопленным активам.
const (
	RankPublicTransport = "publicTransport"
	RankCompact         = "compact"
	RankMidsize         = "midsize"
	RankImported        = "imported"
	RankLuxury          = "luxury"
)

// Верхние границы рангов включительно, по возрастанию.
var carRankThresholds = []struct {
	limit int64
	rank  string
}{
	{21_720_000, RankPublicTransport},
	{40_000_000, RankCompact},
	{88_700_000, RankMidsize},
	{237_200_000, RankImported},
}

// AssetRepository определяет методы хранилища, нужные зарплатному сервису.
type AssetRepository interface {
	// ListJobs возвращает справочник профессий.
	ListJobs(ctx context.Context) ([]*models.Job, error)
	// UpsertUserSalary сохраняет отправку зарплаты, последняя запись с тем же id побеждает.
	UpsertUserSalary(ctx context.Context, entry models.UserSalary) (int, error)
	// GetUserSalary возвращает отправку по клиентскому UUID, nil если записи нет.
	GetUserSalary(ctx context.Context, id uuid.UUID) (*models.UserSalary, error)
	// UpsertUserProfile сохраняет профиль, ключ - salary_id.
	UpsertUserProfile(ctx context.Context, profile models.UserProfile) (int, error)
	// GetUserProfile возвращает профиль по UUID отправки, nil если профиля нет.
	GetUserProfile(ctx context.Context, salaryID uuid.UUID) (*models.UserProfile, error)
	// GetSalaryStat возвращает агрегат для пары (профессия, опыт), nil если агрегата нет.
	GetSalaryStat(ctx context.Context, jobID int64, experience int) (*models.SalaryStat, error)
}

// Cache описывает методы кеширования справочника.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// AssetService реализует операции зарплатного сравнения.
type AssetService struct {
	repo  AssetRepository
	cache Cache
	log   *slog.Logger
}

// NewAssetService создает новый экземпляр AssetService.
func NewAssetService(repo AssetRepository, cache Cache, log *slog.Logger) *AssetService {
	return &AssetService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// ListJobs возвращает справочник профессий через кеш. Инвалидации нет:
// справочник меняется только миграциями.
func (s *AssetService) ListJobs(ctx context.Context) ([]*models.Job, error) {
	var cached []*models.Job
	found, err := s.cache.Get(ctx, jobsCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read jobs from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	jobs, err := s.repo.ListJobs(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, jobsCacheKey, jobs, jobsCacheTTL); err != nil {
		s.log.Warn("failed to cache jobs", slog.String("key", jobsCacheKey), sl.Err(err))
	}
	return jobs, nil
}

// SaveUserSalary нормализует и сохраняет отправку зарплаты по клиентскому UUID
// и возвращает сравнение с агрегатом по профессии. Отправка сохраняется даже
// если агрегата для пары (профессия, опыт) нет - тогда возвращается
// domain.ErrSalaryStatNotFound.
func (s *AssetService) SaveUserSalary(ctx context.Context, req models.DummySalary) (*models.SalaryCompareResult, error) {
	uid, err := uuid.Parse(req.UniqueID)
	if err != nil {
		return nil, fmt.Errorf("invalid unique id: %w", err)
	}

	entry := models.UserSalary{
		ID:         uid,
		JobID:      req.JobID,
		Experience: req.Experience,
		Salary:     req.Salary * SalaryScale,
	}
	if _, err := s.repo.UpsertUserSalary(ctx, entry); err != nil {
		return nil, err
	}
	s.log.Info("saved user salary", slog.String("unique_id", uid.String()))

	stat, err := s.repo.GetSalaryStat(ctx, req.JobID, req.Experience)
	if err != nil {
		return nil, err
	}
	if stat == nil {
		return nil, domain.ErrSalaryStatNotFound
	}

	return &models.SalaryCompareResult{
		UserExperience: req.Experience,
		UserSalary:     req.Salary,
		JobSalary:      stat.Avg,
	}, nil
}

// SaveUserProfile сохраняет профиль потребления и возвращает ранг и перцентиль.
// Профиль без предшествующей отправки зарплаты отклоняется: без нее нечего
// считать и профиль-сирота не может дать валидный ответ.
func (s *AssetService) SaveUserProfile(ctx context.Context, req models.DummyProfile) (*models.ProfileResult, error) {
	uid, err := uuid.Parse(req.UniqueID)
	if err != nil {
		return nil, fmt.Errorf("invalid unique id: %w", err)
	}

	salary, err := s.repo.GetUserSalary(ctx, uid)
	if err != nil {
		return nil, err
	}
	if salary == nil {
		return nil, domain.ErrUserSalaryNotFound
	}

	profile := models.UserProfile{
		SalaryID:      uid,
		Age:           &req.Age,
		SaveRate:      &req.SaveRate,
		HasCar:        &req.HasCar,
		IsMonthlyRent: &req.IsMonthlyRent,
	}
	if _, err := s.repo.UpsertUserProfile(ctx, profile); err != nil {
		return nil, err
	}
	s.log.Info("saved user profile", slog.String("unique_id", uid.String()))

	return s.rankAndPercentage(ctx, salary, req.SaveRate)
}

// GetProfileResult возвращает ранг и перцентиль по сохраненному профилю.
func (s *AssetService) GetProfileResult(ctx context.Context, uniqueID string) (*models.ProfileResult, error) {
	uid, err := uuid.Parse(uniqueID)
	if err != nil {
		return nil, fmt.Errorf("invalid unique id: %w", err)
	}

	profile, err := s.repo.GetUserProfile(ctx, uid)
	if err != nil {
		return nil, err
	}
	if profile == nil || profile.SaveRate == nil {
		return nil, domain.ErrUserProfileNotFound
	}

	salary, err := s.repo.GetUserSalary(ctx, uid)
	if err != nil {
		return nil, err
	}
	if salary == nil {
		return nil, domain.ErrUserSalaryNotFound
	}

	return s.rankAndPercentage(ctx, salary, *profile.SaveRate)
}

func (s *AssetService) rankAndPercentage(ctx context.Context, salary *models.UserSalary, saveRate int) (*models.ProfileResult, error) {
	stat, err := s.repo.GetSalaryStat(ctx, salary.JobID, salary.Experience)
	if err != nil {
		return nil, err
	}
	if stat == nil {
		return nil, domain.ErrSalaryStatNotFound
	}

	return &models.ProfileResult{
		Car:        CarRankFor(FiveYearAsset(salary.Salary, saveRate)),
		Percentage: Percentage(salary.Salary, saveRate, stat.Avg),
	}, nil
}

// FiveYearAsset оценка накоплений за пять лет при трети годовых сбережений:
// floor(salary * saveRate/100 * 5 * 0.3).
func FiveYearAsset(salary int64, saveRate int) int64 {
	return salary * int64(saveRate) * 3 / 200
}

// CarRankFor переводит оценку активов в один из пяти фиксированных рангов.
// Ступенчатая функция, монотонная по активам.
func CarRankFor(asset int64) string {
	for _, t := range carRankThresholds {
		if asset <= t.limit {
			return t.rank
		}
	}
	return RankLuxury
}

// Percentage показывает, насколько пользователь впереди среднего по профессии:
// 100 - floor(userAsset / avg * 100), обрезано в [0, 100]. Превышение среднего
// дает 0, а не отрицательное значение.
func Percentage(salary int64, saveRate int, avg int64) int {
	userAsset := salary * int64(saveRate) / 100
	pct := 100 - int(userAsset*100/avg)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
