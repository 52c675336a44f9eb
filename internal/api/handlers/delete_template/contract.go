package delete_template

import "context"

type DeleteTemplateUseCase interface {
	Execute(ctx context.Context, templateID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
