package apply_templates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	calendarClient "github.com/m04kA/SRS-RoomReservationService/internal/integrations/periodcalendar"
	"github.com/m04kA/SRS-RoomReservationService/internal/service/reservations"
	resmodels "github.com/m04kA/SRS-RoomReservationService/internal/service/reservations/models"
	"github.com/m04kA/SRS-RoomReservationService/pkg/ptr"
)

// UseCase use case массового применения недельных шаблонов.
// Применение не является одной большой транзакцией: каждая пара
// (шаблон, дата) обрабатывается независимой транзакцией, сбой одной
// пары собирается в отчет и не прерывает остальные. Защитой от
// частичных прогонов служит идемпотентность: ячейки, уже занятые
// следами того же шаблона, при повторном прогоне не трогаются и не
// считаются конфликтами.
type UseCase struct {
	templateService TemplateService
	engine          ReservationEngine
	slotRepo        SlotRepository
	campusClient    CampusServiceClient
	calendarClient  PeriodCalendarClient
	auditSink       AuditSink
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	templateService TemplateService,
	engine ReservationEngine,
	slotRepo SlotRepository,
	campusClient CampusServiceClient,
	calendarClient PeriodCalendarClient,
	auditSink AuditSink,
	logger Logger,
) *UseCase {
	return &UseCase{
		templateService: templateService,
		engine:          engine,
		slotRepo:        slotRepo,
		campusClient:    campusClient,
		calendarClient:  calendarClient,
		auditSink:       auditSink,
		logger:          logger,
	}
}

// Execute применяет все активные шаблоны (опционально одного приоритета)
// к диапазону дат в порядке critical → high → normal. Доступно только
// администраторам.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApplyTemplates: user=%d, range=%s..%s, mode=%s, dryRun=%t, force=%t",
		req.UserID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat),
		req.Mode, req.DryRun, req.ForceOverride)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ApplyTemplates: validation failed: %v", err)
		return nil, err
	}

	isAdmin, err := uc.campusClient.IsAdmin(ctx, req.UserID)
	if err != nil {
		uc.logger.Error("ApplyTemplates: failed to check admin rights for user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to check permissions: %v", ErrInternal, err)
	}
	if !isAdmin {
		uc.logger.Warn("ApplyTemplates: user id=%d is not an admin", req.UserID)
		return nil, ErrPermissionDenied
	}

	filter := domain.TemplateFilter{Enabled: ptr.Ptr(true)}
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		filter.Priority = &p
	}

	// Список уже отсортирован по приоритету: critical раньше normal
	templates, err := uc.templateService.List(ctx, filter)
	if err != nil {
		uc.logger.Error("ApplyTemplates: failed to list templates: %v", err)
		return nil, fmt.Errorf("%w: failed to list templates: %v", ErrInternal, err)
	}

	var result domain.BulkApplyResult
	for _, tmpl := range templates {
		result.Merge(uc.applyTemplate(ctx, tmpl, req))
	}

	// Конфликты попадают в журнал аудита только при реальном применении
	if !req.DryRun {
		for _, info := range result.Conflicts {
			uc.auditSink.RecordConflict(ctx, info)
		}
	}

	uc.logger.Info("ApplyTemplates: done, applied=%d overridden=%d relocated=%d skipped=%d conflicts=%d errors=%d",
		result.Applied, result.Overridden, result.Relocated, result.Skipped,
		len(result.Conflicts), len(result.Errors))

	return &Response{
		Applied:    result.Applied,
		Overridden: result.Overridden,
		Relocated:  result.Relocated,
		Skipped:    result.Skipped,
		Conflicts:  result.Conflicts,
		Errors:     result.Errors,
	}, nil
}

// applyTemplate применяет один шаблон ко всем подходящим датам диапазона
func (uc *UseCase) applyTemplate(ctx context.Context, tmpl *domain.WeeklyTemplate, req *Request) domain.BulkApplyResult {
	var result domain.BulkApplyResult

	for _, date := range qualifyingDates(tmpl, req.From, req.To) {
		occurrence := uc.applyOccurrence(ctx, tmpl, date, req)
		result.Merge(occurrence)
	}

	return result
}

// applyOccurrence обрабатывает одну пару (шаблон, дата): определяет
// жильцов ячеек, разрешает конфликты и размещает след шаблона
func (uc *UseCase) applyOccurrence(ctx context.Context, tmpl *domain.WeeklyTemplate, date time.Time, req *Request) domain.BulkApplyResult {
	var result domain.BulkApplyResult

	// 1. Читаем жильцов всех ячеек шаблона на эту дату
	foreign := make(map[int64]*domain.Reservation)
	foreignPeriod := make(map[int64]string)
	for _, period := range tmpl.Periods {
		occ, err := uc.engine.Occupant(ctx, tmpl.RoomID, date, period)
		if err != nil {
			result.Errors = append(result.Errors, applyError(tmpl, date, period, err))
			return result
		}
		if occ == nil || occ.IsLock() {
			// Свободна, либо заглушка (своя перезаписывается, чужая
			// вытесняется при размещении)
			continue
		}
		if occ.Reservation.BelongsToTemplate(tmpl.ID) {
			// След того же шаблона — прогон уже применялся, ячейки
			// считаются занятыми правомерно и счетчики не растут
			return result
		}
		if _, seen := foreign[occ.Reservation.ID]; !seen {
			foreign[occ.Reservation.ID] = occ.Reservation
			foreignPeriod[occ.Reservation.ID] = period
		}
	}

	// 2. Разрешаем конфликты с чужими живыми бронированиями
	blocked := false
	for id, occupant := range foreign {
		info, err := uc.resolveConflict(ctx, tmpl, occupant, date, foreignPeriod[id], req.ForceOverride, req.DryRun)
		if err != nil {
			result.Errors = append(result.Errors, applyError(tmpl, date, foreignPeriod[id], err))
			blocked = true
			continue
		}
		result.Conflicts = append(result.Conflicts, info)
		switch info.Action {
		case domain.ConflictOverridden:
			result.Overridden++
		case domain.ConflictRelocated:
			result.Relocated++
		case domain.ConflictSkipped:
			result.Skipped++
			blocked = true
		}
	}
	if blocked {
		return result
	}

	// 3. Размещаем след шаблона
	if req.DryRun {
		result.Applied++
		return result
	}

	var err error
	switch domain.ApplyMode(req.Mode) {
	case domain.ApplyModeLock:
		err = uc.engine.PlaceLock(ctx, tmpl.ID, tmpl.RoomID, tmpl.RoomName, date, tmpl.Periods, tmpl.CreatedBy)
	default:
		err = uc.materialize(ctx, tmpl, date)
	}
	if err != nil {
		// Ячейку успел занять конкурент между разрешением конфликтов и
		// размещением — единица собирается в отчет, прогон продолжается
		if errors.Is(err, reservations.ErrSlotOccupied) {
			uc.logger.Warn("applyOccurrence: template id=%d lost cell race on %s: %v",
				tmpl.ID, date.Format(domain.DateFormat), err)
		}
		result.Errors = append(result.Errors, applyError(tmpl, date, "", err))
		return result
	}

	result.Applied++
	return result
}

// materialize создает настоящее бронирование от имени шаблона
func (uc *UseCase) materialize(ctx context.Context, tmpl *domain.WeeklyTemplate, date time.Time) error {
	resolved, err := uc.calendarClient.ResolvePeriods(ctx, date, tmpl.Periods)
	if err != nil {
		return fmt.Errorf("resolve periods: %w", err)
	}
	span := calendarClient.BuildSpan(resolved)

	_, err = uc.engine.Create(ctx, resmodels.CreateParams{
		RoomID:      tmpl.RoomID,
		RoomName:    tmpl.RoomName,
		Title:       tmpl.Name,
		OwnerName:   tmpl.Category,
		Date:        date,
		Periods:     tmpl.Periods,
		StartTime:   span.StartTime,
		EndTime:     span.EndTime,
		PeriodLabel: span.Label,
		TemplateID:  &tmpl.ID,
		CreatedBy:   tmpl.CreatedBy,
	})
	return err
}

func applyError(tmpl *domain.WeeklyTemplate, date time.Time, period string, err error) domain.ApplyError {
	return domain.ApplyError{
		Date:         date,
		RoomID:       tmpl.RoomID,
		Period:       period,
		TemplateID:   tmpl.ID,
		TemplateName: tmpl.Name,
		Message:      err.Error(),
	}
}

func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: date range is required", ErrInvalidInput)
	}
	if req.To.Before(req.From) {
		return fmt.Errorf("%w: range end is before range start", ErrInvalidInput)
	}
	if days := rangeDays(req.From, req.To); days > domain.MaxBulkApplyDays {
		return fmt.Errorf("%w: range spans %d days, maximum is %d", ErrInvalidInput, days, domain.MaxBulkApplyDays)
	}
	if !domain.IsValidApplyMode(domain.ApplyMode(req.Mode)) {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, req.Mode)
	}
	if req.Priority != nil && !domain.IsValidPriority(domain.Priority(*req.Priority)) {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, *req.Priority)
	}
	return nil
}
