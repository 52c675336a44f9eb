package get_reservation

import "errors"

var (
	// ErrReservationNotFound бронирование не найдено
	ErrReservationNotFound = errors.New("get_reservation: reservation not found")

	// ErrInternal внутренняя ошибка usecase
	ErrInternal = errors.New("get_reservation: internal error")
)
