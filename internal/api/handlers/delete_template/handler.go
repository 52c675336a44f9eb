package delete_template

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SRS-RoomReservationService/internal/api/handlers"
	"github.com/m04kA/SRS-RoomReservationService/internal/api/middleware"
	deleteTemplate "github.com/m04kA/SRS-RoomReservationService/internal/usecase/delete_template"
)

const (
	msgInvalidID        = "некорректный идентификатор шаблона"
	msgTemplateNotFound = "шаблон не найден"
	msgPermissionDenied = "управлять шаблонами может только администратор"
)

type Handler struct {
	useCase DeleteTemplateUseCase
	logger  Logger
}

func NewHandler(useCase DeleteTemplateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/templates/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.useCase.Execute(r.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, deleteTemplate.ErrPermissionDenied):
			h.logger.Warn("DELETE /templates/{id} - Permission denied: template_id=%d, user_id=%d", id, userID)
			handlers.RespondForbidden(w, msgPermissionDenied)

		case errors.Is(err, deleteTemplate.ErrTemplateNotFound):
			h.logger.Warn("DELETE /templates/{id} - Template not found: template_id=%d", id)
			handlers.RespondNotFound(w, msgTemplateNotFound)

		default:
			h.logger.Error("DELETE /templates/{id} - Failed to delete template: template_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /templates/{id} - Template deleted: template_id=%d, user_id=%d", id, userID)
	w.WriteHeader(http.StatusNoContent)
}
