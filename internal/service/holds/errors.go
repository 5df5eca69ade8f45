package holds

import "errors"

var (
	// ErrHoldExpired возвращается при попытке подтвердить отсутствующий
	// или протухший холд - пользователь должен выбрать слот заново
	ErrHoldExpired = errors.New("hold has expired or does not exist")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("holds service: internal error")
)
