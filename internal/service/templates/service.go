package templates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	templateRepo "github.com/m04kA/SRS-RoomReservationService/internal/infra/storage/template"
	"github.com/m04kA/SRS-RoomReservationService/internal/service/templates/models"
)

// Service сервис управления недельными шаблонами
type Service struct {
	repo   TemplateRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса шаблонов
func NewService(repo TemplateRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Create создает недельный шаблон
func (s *Service) Create(ctx context.Context, params models.CreateParams) (*domain.WeeklyTemplate, error) {
	tmpl := &domain.WeeklyTemplate{
		Name:      params.Name,
		RoomID:    params.RoomID,
		RoomName:  params.RoomName,
		Weekdays:  params.Weekdays,
		Periods:   params.Periods,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		Priority:  params.Priority,
		Category:  params.Category,
		Enabled:   params.Enabled,
		CreatedBy: params.CreatedBy,
	}

	if err := validateTemplate(tmpl); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, tmpl)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: template id=%d name=%q room=%d priority=%s",
		created.ID, created.Name, created.RoomID, created.Priority)
	return created, nil
}

// GetByID получает шаблон по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.WeeklyTemplate, error) {
	tmpl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return tmpl, nil
}

// List получает шаблоны по фильтру, отсортированные по приоритету
// (critical раньше normal), затем по возрастанию ID
func (s *Service) List(ctx context.Context, filter domain.TemplateFilter) ([]*domain.WeeklyTemplate, error) {
	if filter.Priority != nil && !domain.IsValidPriority(*filter.Priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, *filter.Priority)
	}

	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return list, nil
}

// Update частично обновляет шаблон. Переданные поля заменяют текущие,
// остальные сохраняются как есть.
func (s *Service) Update(ctx context.Context, id int64, params models.UpdateParams) (*domain.WeeklyTemplate, error) {
	tmpl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("%w: Update - read template: %v", ErrInternal, err)
	}

	applyUpdate(tmpl, params)

	if err := validateTemplate(tmpl); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, tmpl); err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("Update: repository error for template id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: template id=%d updated", id)
	return tmpl, nil
}

// Delete удаляет шаблон. Следы применения (заглушки, материализованные
// бронирования) остаются — их чистка выполняется отдельной операцией.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: template id=%d deleted", id)
	return nil
}

func applyUpdate(tmpl *domain.WeeklyTemplate, params models.UpdateParams) {
	if params.Name != nil {
		tmpl.Name = *params.Name
	}
	if params.RoomID != nil {
		tmpl.RoomID = *params.RoomID
	}
	if params.RoomName != nil {
		tmpl.RoomName = *params.RoomName
	}
	if params.Weekdays != nil {
		tmpl.Weekdays = params.Weekdays
	}
	if params.Periods != nil {
		tmpl.Periods = params.Periods
	}
	if params.StartDate != nil {
		tmpl.StartDate = *params.StartDate
	}
	if params.ClearEnd {
		tmpl.EndDate = nil
	} else if params.EndDate != nil {
		tmpl.EndDate = params.EndDate
	}
	if params.Priority != nil {
		tmpl.Priority = *params.Priority
	}
	if params.Category != nil {
		tmpl.Category = *params.Category
	}
	if params.Enabled != nil {
		tmpl.Enabled = *params.Enabled
	}
}

func validateTemplate(tmpl *domain.WeeklyTemplate) error {
	if tmpl.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(tmpl.Name) > domain.MaxTemplateNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, domain.MaxTemplateNameLength)
	}
	if tmpl.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}
	if len(tmpl.Weekdays) == 0 {
		return fmt.Errorf("%w: at least one weekday is required", ErrInvalidInput)
	}
	seen := make(map[time.Weekday]struct{}, len(tmpl.Weekdays))
	for _, wd := range tmpl.Weekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return fmt.Errorf("%w: unknown weekday %d", ErrInvalidInput, wd)
		}
		if _, ok := seen[wd]; ok {
			return fmt.Errorf("%w: duplicate weekday %s", ErrInvalidInput, wd)
		}
		seen[wd] = struct{}{}
	}
	if err := domain.ValidatePeriods(tmpl.Periods); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if tmpl.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}
	if tmpl.EndDate != nil && tmpl.EndDate.Before(tmpl.StartDate) {
		return fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}
	if !domain.IsValidPriority(tmpl.Priority) {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, tmpl.Priority)
	}
	if len(tmpl.Category) > domain.MaxCategoryLength {
		return fmt.Errorf("%w: category exceeds %d characters", ErrInvalidInput, domain.MaxCategoryLength)
	}
	return nil
}
