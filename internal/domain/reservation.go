package domain

import (
	"time"

	"github.com/m04kA/SRS-RoomReservationService/pkg/types"
)

// Reservation бронирование аудитории на дату и набор учебных периодов
type Reservation struct {
	ID        int64
	RoomID    int64
	RoomName  string // денормализовано для истории
	Title     string
	OwnerName string

	Date      time.Time        // дата бронирования (без времени)
	StartTime types.TimeString // начало первого периода
	EndTime   types.TimeString // конец последнего периода

	// Periods нормализованный упорядоченный набор атомарных токенов периодов
	Periods []string
	// PeriodLabel денормализованная подпись набора периодов ("3–5", "lunch")
	PeriodLabel string

	// TemplateID заполнен, если бронирование материализовано из шаблона
	TemplateID *int64

	CreatedBy int64
	CreatedAt time.Time
}

// IsTemplateOccurrence возвращает true, если бронирование создано шаблоном
func (r *Reservation) IsTemplateOccurrence() bool {
	return r.TemplateID != nil
}

// BelongsToTemplate возвращает true, если бронирование материализовано
// из указанного шаблона
func (r *Reservation) BelongsToTemplate(templateID int64) bool {
	return r.TemplateID != nil && *r.TemplateID == templateID
}

// IsOwnedBy возвращает true, если бронирование создано указанным пользователем
func (r *Reservation) IsOwnedBy(userID int64) bool {
	return r.CreatedBy == userID
}

// RoomDayFilter фильтр списка бронирований аудитории на дату
type RoomDayFilter struct {
	RoomID int64
	Date   time.Time
}
