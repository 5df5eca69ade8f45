package get_capacity

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/capacity"
)

type CapacityService interface {
	Check(ctx context.Context, req *capacity.Request) (*capacity.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
