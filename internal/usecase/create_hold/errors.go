package create_hold

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("create_hold: resource not found")

	// ErrHoldConflict возвращается, когда диапазон пересекается с активным
	// холдом, бронированием или блокировкой - вызывающая сторона должна
	// предложить другие слоты
	ErrHoldConflict = errors.New("create_hold: time range conflicts with an existing reservation")

	// ErrCapacityExceeded возвращается для групповых услуг, когда остаток
	// мест меньше запрошенного количества
	ErrCapacityExceeded = errors.New("create_hold: not enough remaining capacity")

	// ErrStartInPast возвращается при попытке захолдировать время в прошлом
	ErrStartInPast = errors.New("create_hold: start time is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_hold: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_hold: internal error")
)
