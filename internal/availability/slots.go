// Package availability вычисляет слоты дня по расписанию магазина и занятым интервалам.
// Функции пакета чистые: текущее время и конфигурация передаются явно.
package availability

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// GenerateSlots возвращает упорядоченный список слотов на дату date.
//
// Слоты имеют ширину cfg.SlotIntervalMinutes и выровнены по сетке от времени открытия.
// Для сегодняшней даты первый слот начинается не раньше now (с округлением вверх до сетки).
// Недоступные слоты (обед, занятые интервалы) не отбрасываются, а помечаются Available=false.
// Нерабочий день дает пустой список.
func GenerateSlots(cfg *domain.ScheduleConfig, date time.Time, busy []domain.BusyInterval, now time.Time) []domain.Slot {
	// Шаг 1: нерабочий день - слотов нет
	if cfg.IsNonWorkingDay(date) {
		return []domain.Slot{}
	}

	interval := cfg.Interval()
	if interval <= 0 {
		return []domain.Slot{}
	}

	// Шаг 2: границы рабочего дня
	dayStart, dayEnd := cfg.DayBounds(date)

	// Шаг 3: курсор генерации
	cursor := generationCursor(dayStart, interval, date, now)

	// Шаг 4: идем по сетке, пока слот целиком помещается до закрытия
	slots := make([]domain.Slot, 0)
	for start := cursor; start.Before(dayEnd); start = start.Add(interval) {
		end := start.Add(interval)
		if end.After(dayEnd) {
			break
		}

		// Шаг 5: доступность
		slots = append(slots, domain.Slot{
			Start:     start,
			End:       end,
			Available: IsSpanFree(cfg, start, end, busy),
		})
	}

	return slots
}

// IsSpanFree проверяет, что интервал [start, end) не пересекается ни с обедом, ни с занятыми интервалами.
// Используется и при генерации слотов, и при повторной проверке перед бронированием.
func IsSpanFree(cfg *domain.ScheduleConfig, start, end time.Time, busy []domain.BusyInterval) bool {
	if overlapsLunch(cfg, start, end) {
		return false
	}

	// Занятые интервалы могут быть неотсортированы и пересекаться друг с другом
	for _, b := range busy {
		if b.Overlaps(start, end) {
			return false
		}
	}

	return true
}

// IsAligned проверяет, что start лежит на сетке слотов дня
func IsAligned(cfg *domain.ScheduleConfig, start time.Time) bool {
	dayStart, _ := cfg.DayBounds(start)
	interval := cfg.Interval()
	if interval <= 0 || start.Before(dayStart) {
		return false
	}
	return start.Sub(dayStart)%interval == 0
}

// overlapsLunch обед нулевой длины ни с чем не пересекается.
// Обед за пределами рабочего дня не обрезается
func overlapsLunch(cfg *domain.ScheduleConfig, start, end time.Time) bool {
	if !cfg.HasLunchBreak() {
		return false
	}
	lunchStart, lunchEnd := cfg.LunchBounds(start)
	return start.Before(lunchEnd) && end.After(lunchStart)
}

// generationCursor вычисляет первый возможный старт слота.
//
// Для будущей даты это время открытия. Для сегодняшней (и прошедшей) даты берется
// max(now, dayStart) и округляется вверх до ближайшей границы сетки от dayStart.
// Для прошедшей даты курсор оказывается после закрытия, и слотов не будет.
func generationCursor(dayStart time.Time, interval time.Duration, date, now time.Time) time.Time {
	now = now.In(date.Location())
	if isAfterDay(date, now) {
		return dayStart
	}

	cursor := dayStart
	if now.After(cursor) {
		cursor = now
	}

	if remainder := cursor.Sub(dayStart) % interval; remainder != 0 {
		cursor = cursor.Add(interval - remainder)
	}

	return cursor
}

// isAfterDay проверяет, что дата date строго позже календарного дня now
func isAfterDay(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	dateOnly := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return dateOnly.After(nowOnly)
}
