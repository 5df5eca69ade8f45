package generate_slots

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// dayData снимок занятости ресурса на день, по которому считаются все слоты.
// Один снимок на запрос: либо полный результат, либо ошибка целиком.
type dayData struct {
	bookings []*domain.Booking
	holds    []*domain.Hold
	blocks   []*domain.CalendarBlock
}

// buildSlots генерирует кандидатов по всем окнам дня.
// В каждом окне старты перебираются от начала окна с шагом granularity,
// пока кандидат целиком (вместе с буферами) помещается в окно -
// граница окна включительно: старт допустим при start+occupied == windowEnd.
func buildSlots(
	windows []*domain.AvailabilityWindow,
	date time.Time,
	now time.Time,
	occupiedMinutes int,
	granularityMinutes int,
	totalSeats int,
	requestedQuantity int,
	data dayData,
) ([]domain.Slot, error) {
	occupied := time.Duration(occupiedMinutes) * time.Minute
	granularity := time.Duration(granularityMinutes) * time.Minute
	today := isSameDay(date, now)

	slots := make([]domain.Slot, 0)

	for _, window := range windows {
		winStart, winEnd, err := window.Bounds(date)
		if err != nil {
			return nil, err
		}

		for start := winStart; !start.Add(occupied).After(winEnd); start = start.Add(granularity) {
			end := start.Add(occupied)
			slots = append(slots, buildSlot(start, end, today, now, totalSeats, requestedQuantity, data))
		}
	}

	// Несколько окон на день могут идти в любом порядке
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartAt.Before(slots[j].StartAt)
	})

	return slots, nil
}

// buildSlot вычисляет доступность одного кандидата [start, end).
// Кандидат доступен, если он не пересекает блокировку календаря, не в
// прошлом (для сегодняшней даты) и остаток мест покрывает запрошенное
// количество. Для одноместных услуг totalSeats = 1, так что любое
// пересечение с бронированием или холдом обнуляет остаток.
func buildSlot(
	start, end time.Time,
	today bool,
	now time.Time,
	totalSeats int,
	requestedQuantity int,
	data dayData,
) domain.Slot {
	remaining := domain.RemainingCapacity(totalSeats, data.bookings, data.holds, start, end)
	if remaining < 0 {
		// Транзитный overbooking из устаревших данных - не ошибка запроса
		remaining = 0
	}

	blocked := false
	for _, block := range data.blocks {
		if block.OverlapsRange(start, end) {
			blocked = true
			break
		}
	}
	if blocked {
		remaining = 0
	}

	inPast := today && start.Before(now)

	return domain.Slot{
		StartAt:        start,
		EndAt:          end,
		Available:      !blocked && !inPast && remaining >= requestedQuantity,
		AvailableSeats: remaining,
		TotalSeats:     totalSeats,
	}
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

// dayBounds возвращает границы суток для выборки занятости
func dayBounds(date time.Time) (time.Time, time.Time) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return dayStart, dayStart.AddDate(0, 0, 1)
}
