package create_template

import "errors"

var (
	// ErrRoomNotFound аудитория не найдена
	ErrRoomNotFound = errors.New("create_template: room not found")

	// ErrPermissionDenied пользователь не администратор
	ErrPermissionDenied = errors.New("create_template: permission denied")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("create_template: invalid input data")

	// ErrInternal внутренняя ошибка usecase
	ErrInternal = errors.New("create_template: internal error")
)
