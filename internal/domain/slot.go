package domain

import (
	"fmt"
	"time"
)

// SlotKind вид слота
type SlotKind string

const (
	// SlotKindReservation слот занят бронированием
	SlotKindReservation SlotKind = "reservation"

	// SlotKindTemplateLock слот занят заглушкой шаблона (placeholder,
	// не является настоящим бронированием)
	SlotKindTemplateLock SlotKind = "template_lock"
)

// SlotKey детерминированный составной ключ слота.
// Одинаковые тройки (аудитория, дата, период) всегда дают одинаковый ключ,
// разные тройки — разные ключи.
type SlotKey struct {
	RoomID int64
	Date   string // YYYY-MM-DD
	Period string
}

// NewSlotKey строит ключ слота из тройки (аудитория, дата, период)
func NewSlotKey(roomID int64, date time.Time, period string) SlotKey {
	return SlotKey{
		RoomID: roomID,
		Date:   date.Format(DateFormat),
		Period: period,
	}
}

// String возвращает строковое представление ключа "roomID:date:period"
func (k SlotKey) String() string {
	return fmt.Sprintf("%d:%s:%s", k.RoomID, k.Date, k.Period)
}

// Slot запись о занятости одной тройки (аудитория, дата, период).
// Инвариант: на один ключ существует не более одного действительного слота.
// Слот действителен, если это заглушка шаблона, либо слот вида reservation,
// чей ReservationID указывает на существующее бронирование.
// Создается и удаляется только в одной транзакции с самим бронированием.
type Slot struct {
	RoomID        int64
	Date          time.Time
	Period        string
	Kind          SlotKind
	ReservationID *int64 // для SlotKindReservation
	TemplateID    *int64 // для слотов, созданных применением шаблона
	CreatedBy     int64
	CreatedAt     time.Time
}

// Key возвращает составной ключ слота
func (s *Slot) Key() SlotKey {
	return NewSlotKey(s.RoomID, s.Date, s.Period)
}

// IsLock возвращает true, если слот является заглушкой шаблона
func (s *Slot) IsLock() bool {
	return s.Kind == SlotKindTemplateLock
}

// BelongsToTemplate возвращает true, если слот создан указанным шаблоном
func (s *Slot) BelongsToTemplate(templateID int64) bool {
	return s.TemplateID != nil && *s.TemplateID == templateID
}
