package create_hold

import "time"

// Request модель запроса на создание холда
type Request struct {
	ResourceID int64
	ServiceID  int64
	StartAt    time.Time
	EndAt      time.Time
	Quantity   int
	OwnerToken string // непрозрачный идентификатор сессии; движок его не проверяет
}

// Response модель ответа с созданным холдом
type Response struct {
	ID         string
	ResourceID int64
	ServiceID  int64
	StartAt    time.Time
	EndAt      time.Time
	Quantity   int
	OwnerToken string
	ExpiresAt  time.Time
	CreatedAt  time.Time
}
