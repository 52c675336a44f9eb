package update_template

import "errors"

var (
	// ErrTemplateNotFound шаблон не найден
	ErrTemplateNotFound = errors.New("update_template: template not found")

	// ErrRoomNotFound целевая аудитория не найдена
	ErrRoomNotFound = errors.New("update_template: room not found")

	// ErrPermissionDenied пользователь не администратор
	ErrPermissionDenied = errors.New("update_template: permission denied")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("update_template: invalid input data")

	// ErrInternal внутренняя ошибка usecase
	ErrInternal = errors.New("update_template: internal error")
)
