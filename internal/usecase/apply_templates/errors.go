package apply_templates

import "errors"

var (
	// ErrPermissionDenied пользователь не администратор
	ErrPermissionDenied = errors.New("apply_templates: permission denied")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("apply_templates: invalid input data")

	// ErrInternal внутренняя ошибка usecase
	ErrInternal = errors.New("apply_templates: internal error")
)
