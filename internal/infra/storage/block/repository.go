package block

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository read-only репозиторий блокировок календаря
// (отпуска, техобслуживание). Управляются извне, движок их только читает.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок календаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByResource получает блокировки ресурса, пересекающиеся с [from, to)
func (r *Repository) GetByResource(ctx context.Context, resourceID int64, from, to time.Time) ([]*domain.CalendarBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"resource_id",
		"start_at",
		"end_at",
		"reason",
	).
		From("calendar_blocks").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByResource - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByResource - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.CalendarBlock, 0)

	for rows.Next() {
		var b domain.CalendarBlock

		err := rows.Scan(
			&b.ID,
			&b.ResourceID,
			&b.StartAt,
			&b.EndAt,
			&b.Reason,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByResource - scan block: %v", ErrScanRow, err)
		}

		blocks = append(blocks, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByResource - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
