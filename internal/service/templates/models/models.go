package models

import (
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
)

// CreateParams параметры создания недельного шаблона
type CreateParams struct {
	Name      string
	RoomID    int64
	RoomName  string
	Weekdays  []time.Weekday
	Periods   []string
	StartDate time.Time
	EndDate   *time.Time
	Priority  domain.Priority
	Category  string
	Enabled   bool
	CreatedBy int64
}

// UpdateParams параметры частичного обновления шаблона.
// nil-поле означает "оставить без изменений".
type UpdateParams struct {
	Name      *string
	RoomID    *int64
	RoomName  *string
	Weekdays  []time.Weekday
	Periods   []string
	StartDate *time.Time
	EndDate   *time.Time
	ClearEnd  bool
	Priority  *domain.Priority
	Category  *string
	Enabled   *bool
}
