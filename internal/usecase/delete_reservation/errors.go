package delete_reservation

import "errors"

var (
	// ErrReservationNotFound бронирование не найдено
	ErrReservationNotFound = errors.New("delete_reservation: reservation not found")

	// ErrPermissionDenied пользователь не владелец и не администратор
	ErrPermissionDenied = errors.New("delete_reservation: permission denied")

	// ErrRetriesExhausted удаление не удалось после повторов при преходящих сбоях
	ErrRetriesExhausted = errors.New("delete_reservation: retries exhausted")

	// ErrInternal внутренняя ошибка usecase
	ErrInternal = errors.New("delete_reservation: internal error")
)
