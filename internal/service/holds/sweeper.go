package holds

import (
	"context"
	"time"
)

// RunSweeper периодически удаляет протухшие холды для гигиены хранилища.
// Протухшие холды и без того невидимы на чтении (фильтр по expires_at),
// sweeper лишь не дает таблице расти. Блокирует до закрытия stopCh.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("Sweeper: started, interval=%s", interval)

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-stopCh:
			s.logger.Info("Sweeper: stopped")
			return
		}
	}
}

func (s *Service) sweep(ctx context.Context) {
	deleted, err := s.holdRepo.DeleteExpired(ctx, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("Sweeper: failed to delete expired holds: %v", err)
		return
	}

	if deleted > 0 {
		s.metrics.AddHoldsExpired(int(deleted))
		s.logger.Info("Sweeper: deleted %d expired holds", deleted)
	}
}
