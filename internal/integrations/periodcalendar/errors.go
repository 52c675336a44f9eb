package periodcalendar

import "errors"

var (
	// ErrDayNotFound возвращается, когда на дату нет расписания периодов
	ErrDayNotFound = errors.New("periodcalendar: day schedule not found")

	// ErrPeriodNotFound возвращается, когда токен периода отсутствует
	// в расписании дня
	ErrPeriodNotFound = errors.New("periodcalendar: period not found in day schedule")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса календаря
	ErrInvalidResponse = errors.New("periodcalendar: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("periodcalendar: internal error")
)
