package holds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	holdRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/hold"
)

// Service сервис жизненного цикла холдов: release, confirm, чтение активных.
// Создание холда живет в usecase create_hold; здесь - остальные переходы
// машины состояний created -> (released | expired | confirmed).
type Service struct {
	holdRepo     HoldRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
	metrics      MetricsRecorder
}

// NewService создает новый экземпляр сервиса холдов
func NewService(
	holdRepo HoldRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
	metrics MetricsRecorder,
) *Service {
	return &Service{
		holdRepo:     holdRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		metrics:      metrics,
	}
}

// ReleaseHold удаляет холд. Идемпотентная операция: отсутствующий или уже
// удаленный холд - это no-op, не ошибка.
func (s *Service) ReleaseHold(ctx context.Context, holdID string) error {
	if holdID == "" {
		return fmt.Errorf("%w: holdID is required", ErrInvalidInput)
	}

	err := s.holdRepo.Delete(ctx, holdID)
	if err != nil {
		if errors.Is(err, holdRepo.ErrHoldNotFound) {
			s.logger.Info("ReleaseHold: hold id=%s already absent, no-op", holdID)
			return nil
		}
		s.logger.Error("ReleaseHold: failed to delete hold id=%s: %v", holdID, err)
		return fmt.Errorf("%w: ReleaseHold - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReleaseHold: hold id=%s released", holdID)
	return nil
}

// ConfirmHold атомарно конвертирует действующий холд в бронирование со
// статусом pending. Проверка срока, вставка бронирования и удаление холда
// выполняются в одной сериализуемой транзакции: протухание между проверкой
// и вставкой невозможно. Для протухшего или отсутствующего холда возвращает
// ErrHoldExpired и ничего не мутирует.
func (s *Service) ConfirmHold(ctx context.Context, holdID string) (*domain.Booking, error) {
	if holdID == "" {
		return nil, fmt.Errorf("%w: holdID is required", ErrInvalidInput)
	}

	now := s.timeProvider.Now()

	var result *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Строка холда блокируется FOR UPDATE внутри транзакции
		hold, err := s.holdRepo.GetByID(txCtx, holdID)
		if err != nil {
			if errors.Is(err, holdRepo.ErrHoldNotFound) {
				s.logger.Warn("ConfirmHold: hold id=%s not found", holdID)
				return ErrHoldExpired
			}
			s.logger.Error("ConfirmHold: failed to get hold id=%s: %v", holdID, err)
			return fmt.Errorf("%w: ConfirmHold - get hold: %v", ErrInternal, err)
		}

		if hold.IsExpiredAt(now) {
			s.logger.Warn("ConfirmHold: hold id=%s expired at %s", holdID, hold.ExpiresAt.Format(time.RFC3339))
			return ErrHoldExpired
		}

		booking := &domain.Booking{
			ResourceID: hold.ResourceID,
			ServiceID:  hold.ServiceID,
			StartAt:    hold.StartAt,
			EndAt:      hold.EndAt,
			Quantity:   hold.Quantity,
			Exclusive:  hold.Exclusive,
			Status:     domain.StatusPending,
		}

		created, err := s.bookingRepo.Create(txCtx, booking)
		if err != nil {
			s.logger.Error("ConfirmHold: failed to create booking for hold id=%s: %v", holdID, err)
			return fmt.Errorf("%w: ConfirmHold - create booking: %v", ErrInternal, err)
		}

		if err := s.holdRepo.Delete(txCtx, holdID); err != nil {
			s.logger.Error("ConfirmHold: failed to delete hold id=%s: %v", holdID, err)
			return fmt.Errorf("%w: ConfirmHold - delete hold: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.metrics.IncHoldConfirmed()
	s.logger.Info("ConfirmHold: hold id=%s confirmed into booking id=%d", holdID, result.ID)

	return result, nil
}

// ActiveHolds возвращает непротухшие холды ресурса, пересекающиеся с [from, to)
func (s *Service) ActiveHolds(ctx context.Context, resourceID int64, from, to time.Time) ([]*domain.Hold, error) {
	if resourceID <= 0 {
		return nil, fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	holds, err := s.holdRepo.GetActiveByResource(ctx, resourceID, from, to, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("ActiveHolds: failed to get holds for resource=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: ActiveHolds - repository error: %v", ErrInternal, err)
	}

	return holds, nil
}
