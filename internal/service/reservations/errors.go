package reservations

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservations: reservation not found")

	// ErrSlotOccupied возвращается, когда ячейку занимает живое бронирование.
	// Конкретная ячейка доступна через errors.As с *SlotOccupiedError.
	ErrSlotOccupied = errors.New("reservations: slot occupied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reservations: invalid input data")

	// ErrRetriesExhausted возвращается, когда повторы удаления исчерпаны
	ErrRetriesExhausted = errors.New("reservations: delete retries exhausted")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations: internal error")
)

// SlotOccupiedError конфликт занятости: живое бронирование блокирует ячейку.
// Обязана называть аудиторию, дату и период.
type SlotOccupiedError struct {
	RoomID   int64
	RoomName string
	Date     time.Time
	Period   string

	// OccupantID ID бронирования, занимающего ячейку
	OccupantID int64
}

// Error реализует error
func (e *SlotOccupiedError) Error() string {
	return fmt.Sprintf("reservations: slot occupied: room=%d (%s), date=%s, period=%s, reservation=%d",
		e.RoomID, e.RoomName, e.Date.Format(domain.DateFormat), e.Period, e.OccupantID)
}

// Is позволяет проверять ошибку через errors.Is(err, ErrSlotOccupied)
func (e *SlotOccupiedError) Is(target error) bool {
	return target == ErrSlotOccupied
}
