package create_reservation

import (
	"fmt"
	"strings"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
)

// validateRequest проверяет входные данные и возвращает нормализованный
// список периодов
func validateRequest(req *Request) ([]string, error) {
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.RoomID <= 0 {
		return nil, fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(title) > domain.MaxTitleLength {
		return nil, fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}
	req.Title = title

	if len(req.OwnerName) > domain.MaxOwnerNameLength {
		return nil, fmt.Errorf("%w: ownerName exceeds %d characters", ErrInvalidInput, domain.MaxOwnerNameLength)
	}

	periods, err := domain.NormalizePeriodExpression(req.PeriodExpr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return periods, nil
}
