package create_template

import (
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
)

// Request модель запроса на создание шаблона
type Request struct {
	UserID     int64      // ID администратора
	Name       string     // Название шаблона
	RoomID     int64      // ID аудитории
	Weekdays   []int      // Дни недели (0=воскресенье .. 6=суббота)
	PeriodExpr string     // Выражение периодов: "3", "3,4", "1-4"
	StartDate  time.Time  // Начало окна действия
	EndDate    *time.Time // Конец окна действия (nil = без ограничения)
	Priority   string     // Приоритет: critical | high | normal
	Category   string     // Категория (произвольная метка)
	Enabled    bool       // Активен ли шаблон
}

// Response модель ответа с созданным шаблоном
type Response struct {
	ID        int64
	Name      string
	RoomID    int64
	RoomName  string
	Weekdays  []int
	Periods   []string
	StartDate time.Time
	EndDate   *time.Time
	Priority  string
	Category  string
	Enabled   bool
	CreatedBy int64
	CreatedAt time.Time
}

// WeekdaysToInts преобразует time.Weekday в номера дней для ответа API
func WeekdaysToInts(days []time.Weekday) []int {
	result := make([]int, 0, len(days))
	for _, d := range days {
		result = append(result, int(d))
	}
	return result
}

func toResponse(tmpl *domain.WeeklyTemplate) *Response {
	return &Response{
		ID:        tmpl.ID,
		Name:      tmpl.Name,
		RoomID:    tmpl.RoomID,
		RoomName:  tmpl.RoomName,
		Weekdays:  WeekdaysToInts(tmpl.Weekdays),
		Periods:   tmpl.Periods,
		StartDate: tmpl.StartDate,
		EndDate:   tmpl.EndDate,
		Priority:  string(tmpl.Priority),
		Category:  tmpl.Category,
		Enabled:   tmpl.Enabled,
		CreatedBy: tmpl.CreatedBy,
		CreatedAt: tmpl.CreatedAt,
	}
}
