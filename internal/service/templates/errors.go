package templates

import "errors"

var (
	// ErrTemplateNotFound шаблон не найден
	ErrTemplateNotFound = errors.New("templates: template not found")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("templates: invalid input")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("templates: internal error")
)
