package delete_template

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SRS-RoomReservationService/internal/service/templates"
)

var (
	// ErrTemplateNotFound шаблон не найден
	ErrTemplateNotFound = errors.New("delete_template: template not found")

	// ErrPermissionDenied пользователь не администратор
	ErrPermissionDenied = errors.New("delete_template: permission denied")

	// ErrInternal внутренняя ошибка usecase
	ErrInternal = errors.New("delete_template: internal error")
)

// UseCase use case для удаления недельного шаблона
type UseCase struct {
	service      TemplateService
	campusClient CampusServiceClient
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(service TemplateService, campusClient CampusServiceClient, logger Logger) *UseCase {
	return &UseCase{
		service:      service,
		campusClient: campusClient,
		logger:       logger,
	}
}

// Execute выполняет use case удаления шаблона. Доступно только
// администраторам. Следы применения не удаляются — для них предусмотрена
// отдельная операция очистки.
func (uc *UseCase) Execute(ctx context.Context, templateID, userID int64) error {
	uc.logger.Info("DeleteTemplate: user=%d, template=%d", userID, templateID)

	isAdmin, err := uc.campusClient.IsAdmin(ctx, userID)
	if err != nil {
		uc.logger.Error("DeleteTemplate: failed to check admin rights for user id=%d: %v", userID, err)
		return fmt.Errorf("%w: failed to check permissions: %v", ErrInternal, err)
	}
	if !isAdmin {
		uc.logger.Warn("DeleteTemplate: user id=%d is not an admin", userID)
		return ErrPermissionDenied
	}

	if err := uc.service.Delete(ctx, templateID); err != nil {
		if errors.Is(err, templates.ErrTemplateNotFound) {
			return ErrTemplateNotFound
		}
		uc.logger.Error("DeleteTemplate: failed to delete template id=%d: %v", templateID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("DeleteTemplate: successfully deleted template id=%d", templateID)
	return nil
}
