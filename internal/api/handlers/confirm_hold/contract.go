package confirm_hold

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

type HoldsService interface {
	ConfirmHold(ctx context.Context, holdID string) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
