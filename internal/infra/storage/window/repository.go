package window

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository read-only репозиторий окон доступности.
// Окна - справочные данные: меняются конфигурацией, не трафиком бронирований.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetForDay получает окна доступности ресурса на день недели.
// Если resourceClass непустой, окна дополнительно фильтруются по классу.
// Пустой список - не ошибка: ресурс закрыт в этот день.
func (r *Repository) GetForDay(ctx context.Context, resourceID int64, resourceClass string, dayOfWeek int) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"resource_id",
		"resource_class",
		"day_of_week",
		"start_time",
		"end_time",
		"location",
		"is_available",
	).
		From("availability_windows").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		Where(squirrel.Eq{"is_available": true}).
		OrderBy("start_time ASC")

	if resourceClass != "" {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_class": resourceClass})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetForDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0)

	for rows.Next() {
		var w domain.AvailabilityWindow

		err := rows.Scan(
			&w.ID,
			&w.ResourceID,
			&w.ResourceClass,
			&w.DayOfWeek,
			&w.StartTime,
			&w.EndTime,
			&w.Location,
			&w.IsAvailable,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetForDay - scan window: %v", ErrScanRow, err)
		}

		windows = append(windows, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetForDay - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}
