package generate_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/serviceconfig"
	directoryClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/directoryservice"
)

// UseCase use case генерации слотов для бронирования.
// Чистый read path: не берет блокировок и может выполняться с произвольным
// параллелизмом между запросами.
type UseCase struct {
	windowRepo   WindowRepository
	bookingRepo  BookingRepository
	holdRepo     HoldRepository
	blockRepo    BlockRepository
	configRepo   ConfigRepository
	directory    DirectoryClient
	timeProvider TimeProvider
	logger       Logger
	metrics      MetricsRecorder
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	windowRepo WindowRepository,
	bookingRepo BookingRepository,
	holdRepo HoldRepository,
	blockRepo BlockRepository,
	configRepo ConfigRepository,
	directory DirectoryClient,
	logger Logger,
	metrics MetricsRecorder,
) *UseCase {
	return &UseCase{
		windowRepo:   windowRepo,
		bookingRepo:  bookingRepo,
		holdRepo:     holdRepo,
		blockRepo:    blockRepo,
		configRepo:   configRepo,
		directory:    directory,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		metrics:      metrics,
	}
}

// Execute выполняет use case генерации слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: resource=%d, service=%d, date=%s, duration=%d, granularity=%d, quantity=%d",
		req.ResourceID, req.ServiceID, req.Date.Format(domain.DateFormat),
		req.DurationMinutes, req.GranularityMinutes, req.Quantity)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// Дата в прошлом - слотов нет
	if isDateInPast(req.Date, now) {
		return uc.emptyResponse(req), nil
	}

	// 3. Получаем ресурс
	// Неизвестный ресурс и ресурс без окон дают одинаковый результат -
	// пустой список, не ошибку
	resource, err := uc.directory.GetResource(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrResourceNotFound) {
			uc.logger.Info("GenerateSlots: resource id=%d not found, returning empty slot list", req.ResourceID)
			return uc.emptyResponse(req), nil
		}
		uc.logger.Error("GenerateSlots: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	// 4. Получаем окна доступности на день недели
	dayOfWeek := int(req.Date.Weekday())
	windows, err := uc.windowRepo.GetForDay(ctx, req.ResourceID, resource.Class, dayOfWeek)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to get windows for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get windows: %v", ErrInternal, err)
	}

	if len(windows) == 0 {
		uc.logger.Info("GenerateSlots: resource=%d has no windows on %s", req.ResourceID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req), nil
	}

	// 5. Получаем конфигурацию услуги (буферы, вместимость)
	cfg, err := uc.configRepo.GetByServiceID(ctx, req.ServiceID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GenerateSlots: failed to get config for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}
	if cfg == nil {
		cfg = domain.DefaultServiceConfig(req.ServiceID)
		uc.logger.Info("GenerateSlots: using default config for service=%d", req.ServiceID)
	}

	occupiedMinutes := cfg.OccupiedDurationMinutes(req.DurationMinutes)

	// 6. Получаем занятость ресурса на сутки одним снимком.
	// Любая ошибка чтения прерывает запрос целиком - частичный результат
	// был бы обманчивым.
	dayStart, dayEnd := dayBounds(req.Date)

	bookings, err := uc.bookingRepo.GetActiveByResource(ctx, req.ResourceID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to get bookings for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	holds, err := uc.holdRepo.GetActiveByResource(ctx, req.ResourceID, dayStart, dayEnd, now)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to get holds for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get holds: %v", ErrInternal, err)
	}

	blocks, err := uc.blockRepo.GetByResource(ctx, req.ResourceID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to get blocks for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get blocks: %v", ErrInternal, err)
	}

	// 7. Генерируем кандидатов и вычисляем доступность каждого
	slots, err := buildSlots(
		windows,
		req.Date,
		now,
		occupiedMinutes,
		req.GranularityMinutes,
		cfg.EffectiveCapacity(),
		req.Quantity,
		dayData{bookings: bookings, holds: holds, blocks: blocks},
	)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to build slots: %v", err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}

	uc.metrics.ObserveSlotsGenerated(len(slots))
	uc.logger.Info("GenerateSlots: generated %d slots for resource=%d, service=%d, date=%s",
		len(slots), req.ResourceID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		ResourceID: req.ResourceID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Slots:      slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request) *Response {
	return &Response{
		ResourceID: req.ResourceID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Slots:      []domain.Slot{},
	}
}
