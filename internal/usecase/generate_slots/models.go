package generate_slots

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модель запроса на генерацию слотов
type Request struct {
	ResourceID         int64
	ServiceID          int64
	Date               time.Time // дата без времени
	DurationMinutes    int       // номинальная длительность услуги
	GranularityMinutes int       // шаг перебора кандидатов
	Quantity           int       // запрошенное количество мест (для групповых услуг)
}

// Response модель ответа со списком слотов.
// Возвращаются все кандидаты - и доступные, и занятые - по возрастанию
// времени начала, чтобы вызывающая сторона могла отрисовать оба состояния.
type Response struct {
	ResourceID int64
	ServiceID  int64
	Date       time.Time
	Slots      []domain.Slot
}
