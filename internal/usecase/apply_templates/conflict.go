package apply_templates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	"github.com/m04kA/SRS-RoomReservationService/internal/integrations/campusservice"
	"github.com/m04kA/SRS-RoomReservationService/internal/service/reservations"
	resmodels "github.com/m04kA/SRS-RoomReservationService/internal/service/reservations/models"
)

// resolveConflict разрешает столкновение шаблона с живым чужим бронированием
// по приоритету шаблона (forceOverride поднимает любой приоритет до
// безусловного вытеснения):
//   - critical — вытеснить: удалить бронирование, освободить ячейку;
//   - high — перенести бронирование в свободную аудиторию, при
//     невозможности — вытеснить;
//   - normal — уступить: бронирование остается, шаблон не применяется.
//
// При dryRun решение классифицируется без записи.
func (uc *UseCase) resolveConflict(
	ctx context.Context,
	tmpl *domain.WeeklyTemplate,
	occupant *domain.Reservation,
	date time.Time,
	period string,
	force, dryRun bool,
) (domain.ConflictInfo, error) {
	info := domain.ConflictInfo{
		Date:     date,
		RoomID:   tmpl.RoomID,
		RoomName: tmpl.RoomName,
		Period:   period,
		Existing: domain.OccupantSnapshot{
			ReservationID: occupant.ID,
			Title:         occupant.Title,
			OwnerName:     occupant.OwnerName,
			CreatedBy:     occupant.CreatedBy,
		},
		TemplateID:   tmpl.ID,
		TemplateName: tmpl.Name,
		Priority:     tmpl.Priority,
	}

	priority := tmpl.Priority
	if force {
		priority = domain.PriorityCritical
	}

	switch priority {
	case domain.PriorityNormal:
		info.Action = domain.ConflictSkipped
		return info, nil

	case domain.PriorityHigh:
		target, err := uc.findRelocationRoom(ctx, occupant, date)
		if err != nil {
			return info, err
		}
		if target != nil {
			if dryRun {
				info.Action = domain.ConflictRelocated
				info.RelocatedToRoomID = &target.ID
				return info, nil
			}
			_, err := uc.engine.Move(ctx, resmodels.MoveParams{
				ReservationID:  occupant.ID,
				NewRoomID:      target.ID,
				NewRoomName:    target.Name,
				NewPeriods:     occupant.Periods,
				NewStartTime:   occupant.StartTime,
				NewEndTime:     occupant.EndTime,
				NewPeriodLabel: occupant.PeriodLabel,
			})
			if err == nil {
				info.Action = domain.ConflictRelocated
				info.RelocatedToRoomID = &target.ID
				return info, nil
			}
			// Кандидат занят конкурентом между поиском и переносом —
			// деградируем до вытеснения
			if !errors.Is(err, reservations.ErrSlotOccupied) {
				return info, fmt.Errorf("relocate reservation id=%d: %w", occupant.ID, err)
			}
			uc.logger.Warn("resolveConflict: relocation target room=%d lost to a concurrent claim, overriding reservation id=%d",
				target.ID, occupant.ID)
		}
		fallthrough

	default: // critical либо high без свободной аудитории
		if !dryRun {
			if err := uc.engine.DeleteSnapshot(ctx, occupant); err != nil {
				return info, fmt.Errorf("override reservation id=%d: %w", occupant.ID, err)
			}
		}
		info.Action = domain.ConflictOverridden
		return info, nil
	}
}

// findRelocationRoom ищет аудиторию, свободную на дату во всех периодах
// переносимого бронирования. Поиск не дает гарантии свежести: найденная
// аудитория перепроверяется внутри транзакции переноса.
func (uc *UseCase) findRelocationRoom(ctx context.Context, occupant *domain.Reservation, date time.Time) (*campusservice.Room, error) {
	rooms, err := uc.campusClient.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	candidates := make(map[int64]*campusservice.Room, len(rooms))
	ids := make([]int64, 0, len(rooms))
	for _, room := range rooms {
		if room.ID == occupant.RoomID {
			continue
		}
		candidates[room.ID] = room
		ids = append(ids, room.ID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	for _, period := range occupant.Periods {
		occupied, err := uc.slotRepo.ListOccupiedRooms(ctx, date, period, ids)
		if err != nil {
			return nil, fmt.Errorf("list occupied rooms: %w", err)
		}
		for _, id := range occupied {
			delete(candidates, id)
		}
	}

	// Первый свободный кандидат в порядке обхода каталога аудиторий
	for _, id := range ids {
		if room, ok := candidates[id]; ok {
			return room, nil
		}
	}
	return nil, nil
}
