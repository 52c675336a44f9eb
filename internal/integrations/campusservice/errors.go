package campusservice

import "errors"

var (
	// ErrRoomNotFound возвращается, когда аудитория не найдена
	ErrRoomNotFound = errors.New("campusservice: room not found")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("campusservice: user not found")

	// ErrInvalidResponse возвращается при некорректном ответе справочника
	ErrInvalidResponse = errors.New("campusservice: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("campusservice: internal error")
)
