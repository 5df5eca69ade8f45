package release_hold

import "context"

type HoldsService interface {
	ReleaseHold(ctx context.Context, holdID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
