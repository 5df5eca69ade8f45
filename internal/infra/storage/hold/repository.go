package hold

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// Коды ошибок PostgreSQL, означающие конфликт с существующей строкой
const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

var holdColumns = []string{
	"id",
	"resource_id",
	"service_id",
	"start_at",
	"end_at",
	"quantity",
	"exclusive",
	"owner_token",
	"expires_at",
	"created_at",
}

// Repository репозиторий для работы с холдами.
// Холд с expires_at <= now считается отсутствующим во всех методах чтения -
// корректность истечения не зависит от фонового удаления.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория холдов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create вставляет новый холд.
// Проверка конфликтов выполняется в сервисном слое внутри сериализуемой
// транзакции; exclusion constraint на (resource_id, tstzrange) - страховка
// на уровне БД: проигравшая конкурентная вставка получает ErrHoldConflict.
func (r *Repository) Create(ctx context.Context, h *domain.Hold) (*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("holds").
		Columns(
			"id",
			"resource_id",
			"service_id",
			"start_at",
			"end_at",
			"quantity",
			"exclusive",
			"owner_token",
			"expires_at",
		).
		Values(
			h.ID,
			h.ResourceID,
			h.ServiceID,
			h.StartAt,
			h.EndAt,
			h.Quantity,
			h.Exclusive,
			h.OwnerToken,
			h.ExpiresAt,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt)

	if err != nil {
		if isConflictError(err) {
			return nil, ErrHoldConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	h.CreatedAt = createdAt.Time

	return h, nil
}

// GetByID получает холд по ID независимо от срока истечения.
// Внутри транзакции строка блокируется через FOR UPDATE - используется
// в пути подтверждения, чтобы проверка срока и вставка бронирования
// были неделимы относительно конкурентных вызовов.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(holdColumns...).
		From("holds").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var h domain.Hold
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&h.ID,
		&h.ResourceID,
		&h.ServiceID,
		&h.StartAt,
		&h.EndAt,
		&h.Quantity,
		&h.Exclusive,
		&h.OwnerToken,
		&h.ExpiresAt,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrHoldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan hold: %v", ErrScanRow, err)
	}

	h.CreatedAt = createdAt.Time

	return &h, nil
}

// GetActiveByResource получает непротухшие холды ресурса, пересекающиеся
// с полуинтервалом [from, to). Протухшие строки отфильтровываются по
// expires_at > now. Внутри транзакции строки блокируются через FOR UPDATE.
func (r *Repository) GetActiveByResource(ctx context.Context, resourceID int64, from, to, now time.Time) ([]*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(holdColumns...).
		From("holds").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Gt{"expires_at": now}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByResource - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByResource - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanHolds(rows)
}

// Delete удаляет холд по ID.
// Возвращает ErrHoldNotFound при отсутствии строки - сервисный слой
// трактует это как no-op для идемпотентного release.
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("holds").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrHoldNotFound
	}

	return nil
}

// DeleteExpiredByResource удаляет протухшие холды ресурса.
// Вызывается в начале транзакции создания холда, чтобы exclusion constraint
// не отбрасывал вставку из-за протухшей, но еще не удаленной строки.
func (r *Repository) DeleteExpiredByResource(ctx context.Context, resourceID int64, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("holds").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteExpiredByResource - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteExpiredByResource - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteExpired удаляет все протухшие холды. Используется фоновым sweeper'ом
// для гигиены хранилища; корректность от него не зависит.
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("holds").
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// scanHolds сканирует результаты запроса в слайс холдов
func (r *Repository) scanHolds(rows *sql.Rows) ([]*domain.Hold, error) {
	holds := make([]*domain.Hold, 0)

	for rows.Next() {
		var h domain.Hold
		var createdAt sql.NullTime

		err := rows.Scan(
			&h.ID,
			&h.ResourceID,
			&h.ServiceID,
			&h.StartAt,
			&h.EndAt,
			&h.Quantity,
			&h.Exclusive,
			&h.OwnerToken,
			&h.ExpiresAt,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanHolds - scan hold: %v", ErrScanRow, err)
		}

		h.CreatedAt = createdAt.Time

		holds = append(holds, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanHolds - rows error: %v", ErrScanRow, err)
	}

	return holds, nil
}

// isConflictError проверяет, что ошибка вызвана нарушением exclusion
// или unique constraint
func isConflictError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		return code == pgExclusionViolation || code == pgUniqueViolation
	}
	return false
}
