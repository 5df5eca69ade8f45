package capacity

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByResource(ctx context.Context, resourceID int64, from, to time.Time) ([]*domain.Booking, error)
}

// HoldRepository интерфейс репозитория холдов
type HoldRepository interface {
	GetActiveByResource(ctx context.Context, resourceID int64, from, to, now time.Time) ([]*domain.Hold, error)
}

// ConfigRepository интерфейс репозитория конфигурации услуг
type ConfigRepository interface {
	GetByServiceID(ctx context.Context, serviceID int64) (*domain.ServiceConfig, error)
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
