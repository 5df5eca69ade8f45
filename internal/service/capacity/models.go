package capacity

import "time"

// Request модель запроса проверки вместимости
type Request struct {
	ResourceID int64
	ServiceID  int64
	StartAt    time.Time
	EndAt      time.Time
	Quantity   int
}

// Result результат проверки вместимости
type Result struct {
	Available bool
	Remaining int
	Total     int
}
