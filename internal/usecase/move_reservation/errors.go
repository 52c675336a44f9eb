package move_reservation

import (
	"errors"

	"github.com/m04kA/SRS-RoomReservationService/internal/service/reservations"
)

var (
	// ErrReservationNotFound бронирование не найдено
	ErrReservationNotFound = errors.New("move_reservation: reservation not found")

	// ErrRoomNotFound целевая аудитория не найдена
	ErrRoomNotFound = errors.New("move_reservation: room not found")

	// ErrUnknownPeriod период отсутствует в календаре на дату бронирования
	ErrUnknownPeriod = errors.New("move_reservation: period is not scheduled on this date")

	// ErrPermissionDenied пользователь не владелец и не администратор
	ErrPermissionDenied = errors.New("move_reservation: permission denied")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("move_reservation: invalid input data")

	// ErrSlotOccupied целевая ячейка занята живым бронированием.
	// Подробности конфликта доступны через errors.As с *SlotOccupiedError.
	ErrSlotOccupied = reservations.ErrSlotOccupied

	// ErrInternal внутренняя ошибка usecase
	ErrInternal = errors.New("move_reservation: internal error")
)

// SlotOccupiedError детали конфликта занятости ячейки
type SlotOccupiedError = reservations.SlotOccupiedError
