package generate_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_slots: invalid input data")

	// ErrInternal возвращается при недоступности хранилищ - запрос
	// прерывается целиком, частичный список слотов не возвращается
	ErrInternal = errors.New("generate_slots: internal error")
)
