package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotKey_Deterministic(t *testing.T) {
	date := time.Date(2025, 9, 1, 15, 30, 0, 0, time.UTC)

	k1 := NewSlotKey(101, date, "3")
	k2 := NewSlotKey(101, date.Add(2*time.Hour), "3")

	assert.Equal(t, k1, k2, "время внутри дня не должно влиять на ключ")
	assert.Equal(t, "101:2025-09-01:3", k1.String())

	k3 := NewSlotKey(101, date, "4")
	k4 := NewSlotKey(102, date, "3")
	assert.NotEqual(t, k1, k3)
	assert.NotEqual(t, k1, k4)
}

func TestSlot_IsLock(t *testing.T) {
	resID := int64(7)
	reservation := &Slot{Kind: SlotKindReservation, ReservationID: &resID}
	lock := &Slot{Kind: SlotKindTemplateLock}

	assert.False(t, reservation.IsLock())
	assert.True(t, lock.IsLock())
}

func TestSlot_BelongsToTemplate(t *testing.T) {
	tmplID := int64(5)
	slot := &Slot{Kind: SlotKindTemplateLock, TemplateID: &tmplID}

	assert.True(t, slot.BelongsToTemplate(5))
	assert.False(t, slot.BelongsToTemplate(6))

	manual := &Slot{Kind: SlotKindReservation}
	assert.False(t, manual.BelongsToTemplate(5))
}

func TestWeeklyTemplate_AppliesOn(t *testing.T) {
	endDate := time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)
	tmpl := &WeeklyTemplate{
		Weekdays:  []time.Weekday{time.Monday, time.Wednesday},
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   &endDate,
	}

	// 1 сентября 2025 — понедельник
	assert.True(t, tmpl.AppliesOn(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, tmpl.AppliesOn(time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)))
	// вторник — не входит в набор дней
	assert.False(t, tmpl.AppliesOn(time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC)))
	// до начала окна
	assert.False(t, tmpl.AppliesOn(time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC)))
	// последний день окна включительно (29 сентября — понедельник)
	assert.True(t, tmpl.AppliesOn(time.Date(2025, 9, 29, 0, 0, 0, 0, time.UTC)))
	// после конца окна (6 октября — понедельник)
	assert.False(t, tmpl.AppliesOn(time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC)))
}

func TestWeeklyTemplate_AppliesOn_OpenEnded(t *testing.T) {
	tmpl := &WeeklyTemplate{
		Weekdays:  []time.Weekday{time.Friday},
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	}

	// далекое будущее: без EndDate окно не ограничено справа
	assert.True(t, tmpl.AppliesOn(time.Date(2030, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestParseWeekdays(t *testing.T) {
	got, err := ParseWeekdays([]int{1, 3, 5})
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, got)

	_, err = ParseWeekdays(nil)
	assert.Error(t, err)

	_, err = ParseWeekdays([]int{7})
	assert.Error(t, err)

	_, err = ParseWeekdays([]int{-1})
	assert.Error(t, err)

	_, err = ParseWeekdays([]int{2, 2})
	assert.Error(t, err)
}

func TestPriorityRank(t *testing.T) {
	assert.Less(t, PriorityRank(PriorityCritical), PriorityRank(PriorityHigh))
	assert.Less(t, PriorityRank(PriorityHigh), PriorityRank(PriorityNormal))
}

func TestIsValidPriority(t *testing.T) {
	assert.True(t, IsValidPriority(PriorityCritical))
	assert.True(t, IsValidPriority(PriorityHigh))
	assert.True(t, IsValidPriority(PriorityNormal))
	assert.False(t, IsValidPriority(Priority("urgent")))
	assert.False(t, IsValidPriority(Priority("")))
}
