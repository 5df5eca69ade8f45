package create_hold

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/directoryservice"
)

// HoldRepository интерфейс репозитория холдов
type HoldRepository interface {
	Create(ctx context.Context, h *domain.Hold) (*domain.Hold, error)
	GetActiveByResource(ctx context.Context, resourceID int64, from, to, now time.Time) ([]*domain.Hold, error)
	DeleteExpiredByResource(ctx context.Context, resourceID int64, now time.Time) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByResource(ctx context.Context, resourceID int64, from, to time.Time) ([]*domain.Booking, error)
}

// BlockRepository интерфейс репозитория блокировок календаря
type BlockRepository interface {
	GetByResource(ctx context.Context, resourceID int64, from, to time.Time) ([]*domain.CalendarBlock, error)
}

// ConfigRepository интерфейс репозитория конфигурации услуг
type ConfigRepository interface {
	GetByServiceID(ctx context.Context, serviceID int64) (*domain.ServiceConfig, error)
}

// DirectoryClient интерфейс клиента DirectoryService
type DirectoryClient interface {
	GetResource(ctx context.Context, resourceID int64) (*directoryservice.Resource, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder интерфейс бизнес-метрик создания холдов
type MetricsRecorder interface {
	IncHoldCreated()
	IncHoldConflict()
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// NopMetrics заглушка метрик, когда сбор метрик выключен
type NopMetrics struct{}

func (NopMetrics) IncHoldCreated()  {}
func (NopMetrics) IncHoldConflict() {}
