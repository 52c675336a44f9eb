package create_reservation

import (
	"errors"

	"github.com/m04kA/SRS-RoomReservationService/internal/service/reservations"
)

var (
	// ErrRoomNotFound возвращается, когда аудитория не найдена
	ErrRoomNotFound = errors.New("create_reservation: room not found")

	// ErrUnknownPeriod возвращается, когда период отсутствует в календаре на эту дату
	ErrUnknownPeriod = errors.New("create_reservation: period is not scheduled on this date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrSlotOccupied возвращается, когда хотя бы одна из ячеек занята.
	// Подробности конфликта доступны через errors.As с *SlotOccupiedError.
	ErrSlotOccupied = reservations.ErrSlotOccupied

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

// SlotOccupiedError детали конфликта занятости ячейки
type SlotOccupiedError = reservations.SlotOccupiedError
