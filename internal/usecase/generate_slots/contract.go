package generate_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/directoryservice"
)

// WindowRepository интерфейс репозитория окон доступности
type WindowRepository interface {
	GetForDay(ctx context.Context, resourceID int64, resourceClass string, dayOfWeek int) ([]*domain.AvailabilityWindow, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByResource(ctx context.Context, resourceID int64, from, to time.Time) ([]*domain.Booking, error)
}

// HoldRepository интерфейс репозитория холдов
type HoldRepository interface {
	GetActiveByResource(ctx context.Context, resourceID int64, from, to, now time.Time) ([]*domain.Hold, error)
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

// MetricsRecorder интерфейс бизнес-метрик генерации слотов
type MetricsRecorder interface {
	ObserveSlotsGenerated(count int)
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// NopMetrics заглушка метрик, когда сбор метрик выключен
type NopMetrics struct{}

func (NopMetrics) ObserveSlotsGenerated(int) {}
