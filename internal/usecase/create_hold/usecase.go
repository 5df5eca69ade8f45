package create_hold

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	holdRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/hold"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/serviceconfig"
	directoryClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/directoryservice"
)

// UseCase use case создания холда - концентрирует самый важный инвариант
// движка: проверка конфликтов и вставка холда неделимы с точки зрения
// любого конкурентного вызова. Реализация двухуровневая: сериализуемая
// транзакция с FOR UPDATE-чтениями плюс exclusion constraint в БД как
// страховка - проигравшая конкурентная вставка получает ErrHoldConflict.
type UseCase struct {
	holdRepo     HoldRepository
	bookingRepo  BookingRepository
	blockRepo    BlockRepository
	configRepo   ConfigRepository
	directory    DirectoryClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
	metrics      MetricsRecorder
	ttl          time.Duration
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	holdRepo HoldRepository,
	bookingRepo BookingRepository,
	blockRepo BlockRepository,
	configRepo ConfigRepository,
	directory DirectoryClient,
	txManager TransactionManager,
	logger Logger,
	metrics MetricsRecorder,
	ttl time.Duration,
) *UseCase {
	return &UseCase{
		holdRepo:     holdRepo,
		bookingRepo:  bookingRepo,
		blockRepo:    blockRepo,
		configRepo:   configRepo,
		directory:    directory,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		metrics:      metrics,
		ttl:          ttl,
	}
}

// Execute выполняет use case создания холда
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateHold: resource=%d, service=%d, start=%s, end=%s, quantity=%d",
		req.ResourceID, req.ServiceID, req.StartAt.Format(time.RFC3339), req.EndAt.Format(time.RFC3339), req.Quantity)

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Валидация входных данных
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateHold: validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем существование ресурса
	if _, err := uc.directory.GetResource(ctx, req.ResourceID); err != nil {
		if errors.Is(err, directoryClient.ErrResourceNotFound) {
			uc.logger.Warn("CreateHold: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("CreateHold: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	var result *domain.Hold

	// 4. Проверка конфликтов и вставка в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Конфигурация услуги (буферы, вместимость)
		cfg, err := uc.configRepo.GetByServiceID(txCtx, req.ServiceID)
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateHold: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}
		if cfg == nil {
			cfg = domain.DefaultServiceConfig(req.ServiceID)
		}

		// Резервируемый диапазон: видимый интервал плюс travel-буфер
		reservedEnd := req.EndAt.Add(time.Duration(cfg.TravelMinutes) * time.Minute)

		// 4.2. Убираем протухшие холды ресурса, чтобы exclusion constraint
		// не отбросил вставку из-за невидимой строки
		if err := uc.holdRepo.DeleteExpiredByResource(txCtx, req.ResourceID, now); err != nil {
			uc.logger.Error("CreateHold: failed to delete expired holds: %v", err)
			return fmt.Errorf("%w: failed to delete expired holds: %v", ErrInternal, err)
		}

		// 4.3. Блокировки календаря закрывают диапазон безусловно
		blocks, err := uc.blockRepo.GetByResource(txCtx, req.ResourceID, req.StartAt, reservedEnd)
		if err != nil {
			uc.logger.Error("CreateHold: failed to get blocks: %v", err)
			return fmt.Errorf("%w: failed to get blocks: %v", ErrInternal, err)
		}
		if len(blocks) > 0 {
			uc.logger.Warn("CreateHold: range is blocked for resource=%d", req.ResourceID)
			return ErrHoldConflict
		}

		// 4.4. Активные бронирования и холды в диапазоне (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetActiveByResource(txCtx, req.ResourceID, req.StartAt, reservedEnd)
		if err != nil {
			uc.logger.Error("CreateHold: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		activeHolds, err := uc.holdRepo.GetActiveByResource(txCtx, req.ResourceID, req.StartAt, reservedEnd, now)
		if err != nil {
			uc.logger.Error("CreateHold: failed to get holds: %v", err)
			return fmt.Errorf("%w: failed to get holds: %v", ErrInternal, err)
		}

		// 4.5. Проверка конфликтов
		if cfg.CapacityBased {
			remaining := domain.RemainingCapacity(cfg.EffectiveCapacity(), bookings, activeHolds, req.StartAt, reservedEnd)
			if remaining < 0 {
				uc.logger.Warn("CreateHold: anomaly - negative remaining=%d for resource=%d (stale overbooking)",
					remaining, req.ResourceID)
				remaining = 0
			}
			if remaining < req.Quantity {
				uc.logger.Warn("CreateHold: capacity exceeded for resource=%d: remaining=%d, requested=%d",
					req.ResourceID, remaining, req.Quantity)
				return ErrCapacityExceeded
			}
		} else {
			if len(bookings) > 0 || len(activeHolds) > 0 {
				uc.logger.Warn("CreateHold: range conflict for resource=%d: bookings=%d, holds=%d",
					req.ResourceID, len(bookings), len(activeHolds))
				return ErrHoldConflict
			}
		}

		// 4.6. Вставляем холд
		hold := &domain.Hold{
			ID:         uuid.NewString(),
			ResourceID: req.ResourceID,
			ServiceID:  req.ServiceID,
			StartAt:    req.StartAt,
			EndAt:      reservedEnd,
			Quantity:   req.Quantity,
			Exclusive:  !cfg.CapacityBased,
			OwnerToken: req.OwnerToken,
			ExpiresAt:  now.Add(uc.ttl),
		}

		created, err := uc.holdRepo.Create(txCtx, hold)
		if err != nil {
			if errors.Is(err, holdRepo.ErrHoldConflict) {
				// Конкурентная вставка выиграла гонку - constraint отработал
				uc.logger.Warn("CreateHold: lost insert race for resource=%d", req.ResourceID)
				return ErrHoldConflict
			}
			uc.logger.Error("CreateHold: failed to create hold: %v", err)
			return fmt.Errorf("%w: failed to create hold: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrHoldConflict) || errors.Is(err, ErrCapacityExceeded) {
			uc.metrics.IncHoldConflict()
		}
		return nil, err
	}

	uc.metrics.IncHoldCreated()
	uc.logger.Info("CreateHold: created hold id=%s for resource=%d, expires=%s",
		result.ID, result.ResourceID, result.ExpiresAt.Format(time.RFC3339))

	return &Response{
		ID:         result.ID,
		ResourceID: result.ResourceID,
		ServiceID:  result.ServiceID,
		StartAt:    result.StartAt,
		EndAt:      result.EndAt,
		Quantity:   result.Quantity,
		OwnerToken: result.OwnerToken,
		ExpiresAt:  result.ExpiresAt,
		CreatedAt:  result.CreatedAt,
	}, nil
}
