package holds

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// HoldRepository интерфейс репозитория холдов
type HoldRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Hold, error)
	GetActiveByResource(ctx context.Context, resourceID int64, from, to, now time.Time) ([]*domain.Hold, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// BookingRepository интерфейс репозитория бронирований.
// Сервис холдов - единственный писатель бронирований в системе.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
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

// MetricsRecorder интерфейс бизнес-метрик холдов
type MetricsRecorder interface {
	IncHoldConfirmed()
	AddHoldsExpired(n int)
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// NopMetrics заглушка метрик, когда сбор метрик выключен
type NopMetrics struct{}

func (NopMetrics) IncHoldConfirmed()    {}
func (NopMetrics) AddHoldsExpired(int) {}
