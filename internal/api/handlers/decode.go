package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
)

// maxBodySize максимальный размер тела запроса (1 МБ)
const maxBodySize = 1 << 20

// ErrEmptyBody возвращается при пустом теле запроса
var ErrEmptyBody = errors.New("request body is empty")

// DecodeJSON декодирует тело запроса в v, отклоняя неизвестные поля
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
	decoder.DisallowUnknownFields()

	return decoder.Decode(v)
}
