package cleanup_template

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrPermissionDenied пользователь не администратор
	ErrPermissionDenied = errors.New("cleanup_template: permission denied")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("cleanup_template: invalid input data")

	// ErrInternal внутренняя ошибка usecase
	ErrInternal = errors.New("cleanup_template: internal error")
)

// Request модель запроса на очистку следов шаблона.
// Диапазон дат опционален: nil-границы означают "без ограничения".
type Request struct {
	UserID     int64
	TemplateID int64

	From *time.Time
	To   *time.Time

	// RemoveLocks удалить заглушки шаблона
	RemoveLocks bool
	// RemoveOccurrences удалить материализованные бронирования шаблона
	RemoveOccurrences bool
}

// Response итог очистки
type Response struct {
	LocksRemoved        int64
	ReservationsRemoved int64
}

// UseCase use case для очистки следов применения шаблона.
// Работает по ID шаблона: сам шаблон может быть уже удален,
// его следы остаются адресуемыми.
type UseCase struct {
	engine       ReservationEngine
	campusClient CampusServiceClient
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(engine ReservationEngine, campusClient CampusServiceClient, logger Logger) *UseCase {
	return &UseCase{
		engine:       engine,
		campusClient: campusClient,
		logger:       logger,
	}
}

// Execute выполняет use case очистки. Доступно только администраторам.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CleanupTemplate: user=%d, template=%d, locks=%t, occurrences=%t",
		req.UserID, req.TemplateID, req.RemoveLocks, req.RemoveOccurrences)

	if req.TemplateID <= 0 {
		return nil, fmt.Errorf("%w: templateID must be positive", ErrInvalidInput)
	}
	if !req.RemoveLocks && !req.RemoveOccurrences {
		return nil, fmt.Errorf("%w: nothing to remove", ErrInvalidInput)
	}
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return nil, fmt.Errorf("%w: range end is before range start", ErrInvalidInput)
	}

	isAdmin, err := uc.campusClient.IsAdmin(ctx, req.UserID)
	if err != nil {
		uc.logger.Error("CleanupTemplate: failed to check admin rights for user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to check permissions: %v", ErrInternal, err)
	}
	if !isAdmin {
		uc.logger.Warn("CleanupTemplate: user id=%d is not an admin", req.UserID)
		return nil, ErrPermissionDenied
	}

	result, err := uc.engine.CleanupTemplate(ctx, req.TemplateID, req.From, req.To, req.RemoveLocks, req.RemoveOccurrences)
	if err != nil {
		uc.logger.Error("CleanupTemplate: failed to cleanup template id=%d: %v", req.TemplateID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("CleanupTemplate: template id=%d, removed locks=%d, reservations=%d",
		req.TemplateID, result.LocksRemoved, result.ReservationsRemoved)

	return &Response{
		LocksRemoved:        result.LocksRemoved,
		ReservationsRemoved: result.ReservationsRemoved,
	}, nil
}
