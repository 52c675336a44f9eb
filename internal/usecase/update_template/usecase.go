package update_template

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	campusClient "github.com/m04kA/SRS-RoomReservationService/internal/integrations/campusservice"
	"github.com/m04kA/SRS-RoomReservationService/internal/service/templates"
	"github.com/m04kA/SRS-RoomReservationService/internal/service/templates/models"
)

// Request модель запроса на частичное обновление шаблона.
// nil-поле означает "оставить без изменений".
type Request struct {
	UserID     int64
	TemplateID int64

	Name       *string
	RoomID     *int64
	Weekdays   []int
	PeriodExpr *string
	StartDate  *time.Time
	EndDate    *time.Time
	ClearEnd   bool
	Priority   *string
	Category   *string
	Enabled    *bool
}

// Response модель ответа с обновленным шаблоном
type Response struct {
	ID        int64
	Name      string
	RoomID    int64
	RoomName  string
	Weekdays  []int
	Periods   []string
	StartDate time.Time
	EndDate   *time.Time
	Priority  string
	Category  string
	Enabled   bool
	UpdatedAt time.Time
}

// UseCase use case для обновления недельного шаблона
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

// Execute выполняет use case обновления шаблона. Доступно только
// администраторам. Уже размещенные следы шаблона не пересчитываются —
// изменения влияют на последующие применения.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateTemplate: user=%d, template=%d", req.UserID, req.TemplateID)

	isAdmin, err := uc.campusClient.IsAdmin(ctx, req.UserID)
	if err != nil {
		uc.logger.Error("UpdateTemplate: failed to check admin rights for user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to check permissions: %v", ErrInternal, err)
	}
	if !isAdmin {
		uc.logger.Warn("UpdateTemplate: user id=%d is not an admin", req.UserID)
		return nil, ErrPermissionDenied
	}

	params := models.UpdateParams{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		ClearEnd:  req.ClearEnd,
		Category:  req.Category,
		Enabled:   req.Enabled,
	}

	if req.Weekdays != nil {
		weekdays, err := domain.ParseWeekdays(req.Weekdays)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		params.Weekdays = weekdays
	}

	if req.PeriodExpr != nil {
		periods, err := domain.NormalizePeriodExpression(*req.PeriodExpr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		params.Periods = periods
	}

	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		params.Priority = &p
	}

	if req.RoomID != nil {
		room, err := uc.campusClient.GetRoom(ctx, *req.RoomID)
		if err != nil {
			if errors.Is(err, campusClient.ErrRoomNotFound) {
				uc.logger.Warn("UpdateTemplate: room id=%d not found", *req.RoomID)
				return nil, ErrRoomNotFound
			}
			uc.logger.Error("UpdateTemplate: failed to get room id=%d: %v", *req.RoomID, err)
			return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
		}
		params.RoomID = &room.ID
		params.RoomName = &room.Name
	}

	updated, err := uc.service.Update(ctx, req.TemplateID, params)
	if err != nil {
		if errors.Is(err, templates.ErrTemplateNotFound) {
			return nil, ErrTemplateNotFound
		}
		if errors.Is(err, templates.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("UpdateTemplate: failed to update template id=%d: %v", req.TemplateID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	weekdays := make([]int, 0, len(updated.Weekdays))
	for _, d := range updated.Weekdays {
		weekdays = append(weekdays, int(d))
	}

	uc.logger.Info("UpdateTemplate: successfully updated template id=%d", updated.ID)
	return &Response{
		ID:        updated.ID,
		Name:      updated.Name,
		RoomID:    updated.RoomID,
		RoomName:  updated.RoomName,
		Weekdays:  weekdays,
		Periods:   updated.Periods,
		StartDate: updated.StartDate,
		EndDate:   updated.EndDate,
		Priority:  string(updated.Priority),
		Category:  updated.Category,
		Enabled:   updated.Enabled,
		UpdatedAt: updated.UpdatedAt,
	}, nil
}
