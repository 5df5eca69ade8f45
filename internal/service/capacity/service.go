package capacity

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/serviceconfig"
)

// Service сервис проверки вместимости групповых услуг.
// Считает остаток мест в диапазоне по формуле
// remaining = totalCapacity - места активных бронирований - места активных холдов.
type Service struct {
	bookingRepo  BookingRepository
	holdRepo     HoldRepository
	configRepo   ConfigRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса вместимости
func NewService(
	bookingRepo BookingRepository,
	holdRepo HoldRepository,
	configRepo ConfigRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		holdRepo:     holdRepo,
		configRepo:   configRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Check вычисляет остаток мест для [StartAt, EndAt) и отвечает, помещается
// ли запрошенное количество. Отрицательный остаток (транзитный overbooking
// из-за устаревших данных) схлопывается в ноль и логируется как аномалия,
// а не возвращается как ошибка.
func (s *Service) Check(ctx context.Context, req *Request) (*Result, error) {
	if err := validateRequest(req); err != nil {
		s.logger.Warn("CheckCapacity: validation failed: %v", err)
		return nil, err
	}

	cfg, err := s.configRepo.GetByServiceID(ctx, req.ServiceID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		s.logger.Error("CheckCapacity: failed to get config for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}
	if cfg == nil {
		cfg = domain.DefaultServiceConfig(req.ServiceID)
	}

	total := cfg.EffectiveCapacity()

	bookings, err := s.bookingRepo.GetActiveByResource(ctx, req.ResourceID, req.StartAt, req.EndAt)
	if err != nil {
		s.logger.Error("CheckCapacity: failed to get bookings for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	holds, err := s.holdRepo.GetActiveByResource(ctx, req.ResourceID, req.StartAt, req.EndAt, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("CheckCapacity: failed to get holds for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get holds: %v", ErrInternal, err)
	}

	remaining := domain.RemainingCapacity(total, bookings, holds, req.StartAt, req.EndAt)
	if remaining < 0 {
		s.logger.Warn("CheckCapacity: anomaly - negative remaining=%d for resource=%d, service=%d (stale overbooking), clamping to 0",
			remaining, req.ResourceID, req.ServiceID)
		remaining = 0
	}

	result := &Result{
		Available: remaining >= req.Quantity,
		Remaining: remaining,
		Total:     total,
	}

	s.logger.Info("CheckCapacity: resource=%d, service=%d, requested=%d, remaining=%d/%d, available=%t",
		req.ResourceID, req.ServiceID, req.Quantity, result.Remaining, result.Total, result.Available)

	return result, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if !req.StartAt.Before(req.EndAt) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}
	if req.Quantity < domain.MinQuantity || req.Quantity > domain.MaxQuantity {
		return fmt.Errorf("%w: quantity must be between %d and %d", ErrInvalidInput, domain.MinQuantity, domain.MaxQuantity)
	}
	return nil
}
