package cleanup_template

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SRS-RoomReservationService/internal/api/handlers"
	"github.com/m04kA/SRS-RoomReservationService/internal/api/middleware"
	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	cleanupTemplate "github.com/m04kA/SRS-RoomReservationService/internal/usecase/cleanup_template"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidID          = "некорректный идентификатор шаблона"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные параметры очистки"
	msgPermissionDenied   = "очищать следы шаблонов может только администратор"
)

// CleanupTemplateRequest HTTP request model
type CleanupTemplateRequest struct {
	From              *string `json:"from,omitempty"`
	To                *string `json:"to,omitempty"`
	RemoveLocks       bool    `json:"removeLocks"`
	RemoveOccurrences bool    `json:"removeOccurrences"`
}

// CleanupTemplateResponse HTTP response model
type CleanupTemplateResponse struct {
	LocksRemoved        int64 `json:"locksRemoved"`
	ReservationsRemoved int64 `json:"reservationsRemoved"`
}

type Handler struct {
	useCase CleanupTemplateUseCase
	logger  Logger
}

func NewHandler(useCase CleanupTemplateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/templates/{id}/cleanup
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req CleanupTemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /templates/{id}/cleanup - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq := &cleanupTemplate.Request{
		UserID:            userID,
		TemplateID:        id,
		RemoveLocks:       req.RemoveLocks,
		RemoveOccurrences: req.RemoveOccurrences,
	}
	if req.From != nil {
		parsed, err := time.Parse(domain.DateFormat, *req.From)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		useCaseReq.From = &parsed
	}
	if req.To != nil {
		parsed, err := time.Parse(domain.DateFormat, *req.To)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		useCaseReq.To = &parsed
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, cleanupTemplate.ErrPermissionDenied):
			h.logger.Warn("POST /templates/{id}/cleanup - Permission denied: template_id=%d, user_id=%d", id, userID)
			handlers.RespondForbidden(w, msgPermissionDenied)

		case errors.Is(err, cleanupTemplate.ErrInvalidInput):
			h.logger.Warn("POST /templates/{id}/cleanup - Invalid input: template_id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /templates/{id}/cleanup - Failed to cleanup: template_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /templates/{id}/cleanup - Done: template_id=%d, locks=%d, reservations=%d",
		id, result.LocksRemoved, result.ReservationsRemoved)
	handlers.RespondJSON(w, http.StatusOK, &CleanupTemplateResponse{
		LocksRemoved:        result.LocksRemoved,
		ReservationsRemoved: result.ReservationsRemoved,
	})
}
