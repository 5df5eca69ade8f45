package serviceconfig

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository read-only репозиторий конфигурации услуг:
// буферы вокруг номинальной длительности и вместимость для групповых услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByServiceID получает конфигурацию услуги.
// Отсутствие конфигурации - штатная ситуация (ErrConfigNotFound):
// вызывающий код подставляет дефолты (нулевые буферы, одно место).
func (r *Repository) GetByServiceID(ctx context.Context, serviceID int64) (*domain.ServiceConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"service_id",
		"pre_minutes",
		"post_minutes",
		"travel_minutes",
		"total_capacity",
		"capacity_based",
		"created_at",
		"updated_at",
	).
		From("service_configs").
		Where(squirrel.Eq{"service_id": serviceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByServiceID - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.ServiceConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.ServiceID,
		&cfg.PreMinutes,
		&cfg.PostMinutes,
		&cfg.TravelMinutes,
		&cfg.TotalCapacity,
		&cfg.CapacityBased,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByServiceID - scan config: %v", ErrScanRow, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}
