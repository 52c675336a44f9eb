package apply_templates

import (
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
)

// qualifyingDates разворачивает шаблон в даты диапазона [from, to]:
// день недели входит в набор шаблона и дата попадает в окно его действия
func qualifyingDates(tmpl *domain.WeeklyTemplate, from, to time.Time) []time.Time {
	var dates []time.Time
	for d := truncateToDay(from); !d.After(truncateToDay(to)); d = d.AddDate(0, 0, 1) {
		if tmpl.AppliesOn(d) {
			dates = append(dates, d)
		}
	}
	return dates
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// rangeDays число календарных дней в диапазоне [from, to] включительно.
// Границы приводятся к полуночи UTC, чтобы перевод часов в локальной
// зоне не искажал деление на сутки
func rangeDays(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a)/(24*time.Hour)) + 1
}
