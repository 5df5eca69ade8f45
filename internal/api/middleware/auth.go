package middleware

import (
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
)

const (
	headerOwnerToken = "X-Owner-Token"

	msgMissingOwnerToken = "токен владельца обязателен"
)

// OwnerToken требует непустой заголовок X-Owner-Token для операций с холдами.
// Токен непрозрачен: движок его не валидирует, только привязывает к холду.
func OwnerToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(headerOwnerToken) == "" {
			handlers.RespondUnauthorized(w, msgMissingOwnerToken)
			return
		}
		next.ServeHTTP(w, r)
	})
}
