package list_templates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	"github.com/m04kA/SRS-RoomReservationService/internal/service/templates"
)

var (
	// ErrInvalidInput некорректные параметры фильтра
	ErrInvalidInput = errors.New("list_templates: invalid input data")

	// ErrInternal внутренняя ошибка usecase
	ErrInternal = errors.New("list_templates: internal error")
)

// Request параметры фильтрации списка шаблонов (nil = без фильтра)
type Request struct {
	Enabled  *bool
	Priority *string
	RoomID   *int64
}

// Template элемент списка шаблонов
type Template struct {
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
	CreatedBy int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Response список шаблонов, отсортированный по приоритету, затем по ID
type Response struct {
	Templates []Template
}

// UseCase use case для получения списка шаблонов
type UseCase struct {
	service TemplateService
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(service TemplateService, logger Logger) *UseCase {
	return &UseCase{
		service: service,
		logger:  logger,
	}
}

// Execute выполняет use case получения списка шаблонов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	filter := domain.TemplateFilter{
		Enabled: req.Enabled,
		RoomID:  req.RoomID,
	}
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		filter.Priority = &p
	}

	list, err := uc.service.List(ctx, filter)
	if err != nil {
		if errors.Is(err, templates.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("ListTemplates: failed to list templates: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	resp := &Response{Templates: make([]Template, 0, len(list))}
	for _, tmpl := range list {
		weekdays := make([]int, 0, len(tmpl.Weekdays))
		for _, d := range tmpl.Weekdays {
			weekdays = append(weekdays, int(d))
		}
		resp.Templates = append(resp.Templates, Template{
			ID:        tmpl.ID,
			Name:      tmpl.Name,
			RoomID:    tmpl.RoomID,
			RoomName:  tmpl.RoomName,
			Weekdays:  weekdays,
			Periods:   tmpl.Periods,
			StartDate: tmpl.StartDate,
			EndDate:   tmpl.EndDate,
			Priority:  string(tmpl.Priority),
			Category:  tmpl.Category,
			Enabled:   tmpl.Enabled,
			CreatedBy: tmpl.CreatedBy,
			CreatedAt: tmpl.CreatedAt,
			UpdatedAt: tmpl.UpdatedAt,
		})
	}
	return resp, nil
}
