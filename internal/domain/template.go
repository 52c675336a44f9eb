package domain

import (
	"errors"
	"fmt"
	"time"
)

// Priority приоритет шаблона, определяет исход конфликта с существующим
// бронированием
type Priority string

const (
	// PriorityCritical шаблон безусловно вытесняет существующее бронирование
	PriorityCritical Priority = "critical"

	// PriorityHigh шаблон пытается перенести существующее бронирование в
	// свободную аудиторию, при невозможности — вытесняет
	PriorityHigh Priority = "high"

	// PriorityNormal шаблон уступает существующему бронированию
	PriorityNormal Priority = "normal"
)

// IsValidPriority проверяет допустимость значения приоритета
func IsValidPriority(p Priority) bool {
	return p == PriorityCritical || p == PriorityHigh || p == PriorityNormal
}

// PriorityRank возвращает ранг приоритета для сортировки (меньше = важнее)
func PriorityRank(p Priority) int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	default:
		return 2
	}
}

// WeeklyTemplate еженедельное регулярное занятие аудитории.
// Живет независимо от бронирований; изменяется только администратором.
type WeeklyTemplate struct {
	ID       int64
	Name     string
	RoomID   int64
	RoomName string

	// Weekdays дни недели, по которым шаблон действует
	Weekdays []time.Weekday
	// Periods набор токенов периодов
	Periods []string

	// Окно действия: StartDate включительно, EndDate включительно
	// (nil = без ограничения)
	StartDate time.Time
	EndDate   *time.Time

	Priority Priority
	Category string
	Enabled  bool

	CreatedBy int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppliesOn возвращает true, если шаблон действует в указанную дату:
// день недели входит в набор и дата попадает в окно действия
func (t *WeeklyTemplate) AppliesOn(date time.Time) bool {
	if !t.containsWeekday(date.Weekday()) {
		return false
	}
	day := truncateToDay(date)
	if day.Before(truncateToDay(t.StartDate)) {
		return false
	}
	if t.EndDate != nil && day.After(truncateToDay(*t.EndDate)) {
		return false
	}
	return true
}

func (t *WeeklyTemplate) containsWeekday(wd time.Weekday) bool {
	for _, d := range t.Weekdays {
		if d == wd {
			return true
		}
	}
	return false
}

// ParseWeekdays преобразует номера дней недели (0=воскресенье .. 6=суббота)
// в time.Weekday с проверкой диапазона и дубликатов
func ParseWeekdays(days []int) ([]time.Weekday, error) {
	if len(days) == 0 {
		return nil, errors.New("at least one weekday is required")
	}
	seen := make(map[int]struct{}, len(days))
	result := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("weekday %d is out of range 0..6", d)
		}
		if _, ok := seen[d]; ok {
			return nil, fmt.Errorf("duplicate weekday %d", d)
		}
		seen[d] = struct{}{}
		result = append(result, time.Weekday(d))
	}
	return result, nil
}

// TemplateFilter фильтр списка шаблонов
type TemplateFilter struct {
	Enabled  *bool
	Priority *Priority
	RoomID   *int64
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
