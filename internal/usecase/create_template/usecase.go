package create_template

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	campusClient "github.com/m04kA/SRS-RoomReservationService/internal/integrations/campusservice"
	"github.com/m04kA/SRS-RoomReservationService/internal/service/templates"
	"github.com/m04kA/SRS-RoomReservationService/internal/service/templates/models"
)

// UseCase use case для создания недельного шаблона
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

// Execute выполняет use case создания шаблона. Доступно только администраторам.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateTemplate: user=%d, name=%q, room=%d, priority=%s",
		req.UserID, req.Name, req.RoomID, req.Priority)

	isAdmin, err := uc.campusClient.IsAdmin(ctx, req.UserID)
	if err != nil {
		uc.logger.Error("CreateTemplate: failed to check admin rights for user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to check permissions: %v", ErrInternal, err)
	}
	if !isAdmin {
		uc.logger.Warn("CreateTemplate: user id=%d is not an admin", req.UserID)
		return nil, ErrPermissionDenied
	}

	weekdays, err := domain.ParseWeekdays(req.Weekdays)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	periods, err := domain.NormalizePeriodExpression(req.PeriodExpr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	room, err := uc.campusClient.GetRoom(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, campusClient.ErrRoomNotFound) {
			uc.logger.Warn("CreateTemplate: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateTemplate: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	created, err := uc.service.Create(ctx, models.CreateParams{
		Name:      req.Name,
		RoomID:    room.ID,
		RoomName:  room.Name,
		Weekdays:  weekdays,
		Periods:   periods,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Priority:  domain.Priority(req.Priority),
		Category:  req.Category,
		Enabled:   req.Enabled,
		CreatedBy: req.UserID,
	})
	if err != nil {
		if errors.Is(err, templates.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("CreateTemplate: failed to create template: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateTemplate: successfully created template id=%d", created.ID)
	return toResponse(created), nil
}
