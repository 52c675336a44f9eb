package periodcalendar

import "github.com/m04kA/SRS-RoomReservationService/pkg/types"

// Period описание одного учебного периода в календаре на конкретную дату.
// Сервис бронирования не вычисляет время сам — только подставляет
// полученные границы.
type Period struct {
	Token     string           `json:"token"`
	Label     string           `json:"label"`
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}

// DaySchedule расписание периодов на дату
type DaySchedule struct {
	Date    string   `json:"date"` // YYYY-MM-DD
	Periods []Period `json:"periods"`
}

// ByToken индексирует периоды дня по токену
func (d *DaySchedule) ByToken() map[string]Period {
	m := make(map[string]Period, len(d.Periods))
	for _, p := range d.Periods {
		m[p.Token] = p
	}
	return m
}
