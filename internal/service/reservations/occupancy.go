package reservations

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
)

// claimCells проверяет занятость ячеек (roomID, date, periods) внутри
// активной транзакции и расчищает недействительные слоты.
//
// Правила для найденного слота:
//   - заглушка шаблона — не настоящий жилец: удаляется, ячейка считается
//     свободной (настоящее бронирование всегда вытесняет заглушку);
//   - слот вида reservation без ссылки, либо со ссылкой на несуществующее
//     бронирование — осиротевший артефакт прошлого частичного сбоя:
//     удаляется, ячейка считается свободной;
//   - слот собственного бронирования ignoreReservationID (перенос внутри
//     пересекающегося набора ячеек) — удаляется вместе с прочими старыми
//     слотами;
//   - слот живого чужого бронирования — настоящий конфликт: транзакция
//     откатывается целиком, включая расчистку, возвращается
//     *SlotOccupiedError с координатами ячейки.
func (s *Service) claimCells(ctx context.Context, roomID int64, roomName string, date time.Time, periods []string, ignoreReservationID *int64) error {
	slots, err := s.slotRepo.GetForKeys(ctx, roomID, date, periods)
	if err != nil {
		return fmt.Errorf("%w: claimCells - read slots: %v", ErrInternal, err)
	}

	if len(slots) == 0 {
		return nil
	}

	// Собираем ссылки на бронирования для проверки, какие из них еще живы
	refIDs := make([]int64, 0, len(slots))
	for _, slot := range slots {
		if slot.Kind == domain.SlotKindReservation && slot.ReservationID != nil {
			refIDs = append(refIDs, *slot.ReservationID)
		}
	}

	live := make(map[int64]*domain.Reservation)
	if len(refIDs) > 0 {
		reservations, err := s.reservationRepo.GetByIDs(ctx, refIDs)
		if err != nil {
			return fmt.Errorf("%w: claimCells - resolve reservations: %v", ErrInternal, err)
		}
		for _, res := range reservations {
			live[res.ID] = res
		}
	}

	stale := make([]string, 0, len(slots))
	for _, slot := range slots {
		switch {
		case slot.IsLock():
			stale = append(stale, slot.Period)

		case slot.ReservationID == nil:
			stale = append(stale, slot.Period)

		case ignoreReservationID != nil && *slot.ReservationID == *ignoreReservationID:
			stale = append(stale, slot.Period)

		default:
			res, ok := live[*slot.ReservationID]
			if !ok {
				stale = append(stale, slot.Period)
				continue
			}
			return &SlotOccupiedError{
				RoomID:     roomID,
				RoomName:   roomName,
				Date:       date,
				Period:     slot.Period,
				OccupantID: res.ID,
			}
		}
	}

	if len(stale) > 0 {
		s.logger.Info("claimCells: removing %d stale slot(s) for room=%d date=%s",
			len(stale), roomID, date.Format(domain.DateFormat))
		if err := s.slotRepo.DeleteByKeys(ctx, roomID, date, stale); err != nil {
			return fmt.Errorf("%w: claimCells - delete stale slots: %v", ErrInternal, err)
		}
	}

	return nil
}

// buildReservationSlots строит слоты бронирования: по одному на каждый
// атомарный период, с обратной ссылкой на бронирование
func buildReservationSlots(res *domain.Reservation) []*domain.Slot {
	slots := make([]*domain.Slot, 0, len(res.Periods))
	for _, period := range res.Periods {
		slots = append(slots, &domain.Slot{
			RoomID:        res.RoomID,
			Date:          res.Date,
			Period:        period,
			Kind:          domain.SlotKindReservation,
			ReservationID: &res.ID,
			TemplateID:    res.TemplateID,
			CreatedBy:     res.CreatedBy,
		})
	}
	return slots
}

// errorPeriodForDuplicate подбирает период для ошибки занятости,
// когда конфликт обнаружен нарушением уникального ключа при вставке
// (точная ячейка в этот момент неизвестна)
func errorPeriodForDuplicate(periods []string) string {
	if len(periods) == 1 {
		return periods[0]
	}
	return fmt.Sprintf("one of %v", periods)
}
