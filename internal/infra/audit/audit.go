// Package audit журнал разрешенных конфликтов применения шаблонов.
// Пишет структурированные записи в общий журнал сервиса; внешней
// системе аудита записи доступны через него.
package audit

import (
	"context"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Sink приемник записей о конфликтах
type Sink struct {
	logger Logger
}

// NewSink создает новый приемник аудита
func NewSink(logger Logger) *Sink {
	return &Sink{logger: logger}
}

// RecordConflict фиксирует одно разрешенное столкновение шаблона
// с существующим жильцом ячейки
func (s *Sink) RecordConflict(_ context.Context, info domain.ConflictInfo) {
	if info.RelocatedToRoomID != nil {
		s.logger.Info("AUDIT conflict: action=%s template=%d (%s, %s) cell=%d/%s/%s occupant=%d %q by=%d relocatedTo=%d",
			info.Action, info.TemplateID, info.TemplateName, info.Priority,
			info.RoomID, info.Date.Format(domain.DateFormat), info.Period,
			info.Existing.ReservationID, info.Existing.Title, info.Existing.CreatedBy,
			*info.RelocatedToRoomID)
		return
	}
	s.logger.Info("AUDIT conflict: action=%s template=%d (%s, %s) cell=%d/%s/%s occupant=%d %q by=%d",
		info.Action, info.TemplateID, info.TemplateName, info.Priority,
		info.RoomID, info.Date.Format(domain.DateFormat), info.Period,
		info.Existing.ReservationID, info.Existing.Title, info.Existing.CreatedBy)
}
