package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	"github.com/m04kA/SRS-RoomReservationService/internal/infra/storage"
	reservationRepo "github.com/m04kA/SRS-RoomReservationService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SRS-RoomReservationService/internal/infra/storage/slot"
	"github.com/m04kA/SRS-RoomReservationService/internal/service/reservations/models"
	"github.com/m04kA/SRS-RoomReservationService/pkg/txmanager"
)

const (
	// deleteMaxAttempts число попыток удаления при преходящих сбоях хранилища
	deleteMaxAttempts = 3

	// deleteRetryBaseDelay базовая задержка перед повтором удаления,
	// удваивается с каждой попыткой
	deleteRetryBaseDelay = 100 * time.Millisecond
)

// Service движок атомарных операций над бронированиями и их слотами.
// Каждая операция выполняется в одной сериализуемой транзакции: запись
// бронирования и записи слотов фиксируются или откатываются вместе.
type Service struct {
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр движка бронирований
func NewService(
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Create создает бронирование и слоты всех его периодов в одной транзакции.
// Если хотя бы одну ячейку занимает живое бронирование, транзакция
// откатывается целиком и возвращается *SlotOccupiedError с её координатами.
// Две конкурентные попытки занять одну ячейку не могут обе завершиться
// успехом: проигравшая получает конфликт занятости на коммите.
// Операция не повторяется при неоднозначном сбое — повтор после фактически
// зафиксированной первой попытки создал бы дубликат.
func (s *Service) Create(ctx context.Context, params models.CreateParams) (*domain.Reservation, error) {
	if err := validateCreateParams(params); err != nil {
		return nil, err
	}

	var created *domain.Reservation

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.claimCells(txCtx, params.RoomID, params.RoomName, params.Date, params.Periods, nil); err != nil {
			return err
		}

		res := &domain.Reservation{
			RoomID:      params.RoomID,
			RoomName:    params.RoomName,
			Title:       params.Title,
			OwnerName:   params.OwnerName,
			Date:        params.Date,
			StartTime:   params.StartTime,
			EndTime:     params.EndTime,
			Periods:     params.Periods,
			PeriodLabel: params.PeriodLabel,
			TemplateID:  params.TemplateID,
			CreatedBy:   params.CreatedBy,
		}

		res, err := s.reservationRepo.Create(txCtx, res)
		if err != nil {
			return fmt.Errorf("%w: Create - insert reservation: %v", ErrInternal, err)
		}

		if err := s.slotRepo.Insert(txCtx, buildReservationSlots(res)); err != nil {
			return err
		}

		created = res
		return nil
	})

	if err != nil {
		// Проигрыш гонки на уникальном ключе слота эквивалентен занятой ячейке
		if errors.Is(err, slotRepo.ErrDuplicateKey) {
			s.logger.Warn("Create: lost slot race for room=%d date=%s periods=%v",
				params.RoomID, params.Date.Format(domain.DateFormat), params.Periods)
			return nil, &SlotOccupiedError{
				RoomID:   params.RoomID,
				RoomName: params.RoomName,
				Date:     params.Date,
				Period:   errorPeriodForDuplicate(params.Periods),
			}
		}
		if errors.Is(err, ErrSlotOccupied) {
			s.logger.Warn("Create: %v", err)
			return nil, err
		}
		s.logger.Error("Create: transaction failed for room=%d date=%s: %v",
			params.RoomID, params.Date.Format(domain.DateFormat), err)
		return nil, err
	}

	s.logger.Info("Create: reservation id=%d room=%d date=%s periods=%v",
		created.ID, created.RoomID, created.Date.Format(domain.DateFormat), created.Periods)
	return created, nil
}

// Delete удаляет бронирование и все его слоты в одной транзакции.
// Преходящие сбои хранилища (перегрузка, конфликт блокировок) повторяются
// ограниченное число раз с экспоненциальной задержкой; прочие ошибки
// всплывают сразу.
func (s *Service) Delete(ctx context.Context, id int64) error {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		return fmt.Errorf("%w: Delete - read reservation: %v", ErrInternal, err)
	}

	return s.DeleteSnapshot(ctx, res)
}

// DeleteSnapshot удаляет бронирование по уже известному снимку, без
// повторного чтения. Используется, когда вызывающий держит свежие данные
// (конфликт-резолюция при применении шаблонов), чтобы сократить объем чтений.
func (s *Service) DeleteSnapshot(ctx context.Context, res *domain.Reservation) error {
	var lastErr error

	for attempt := 0; attempt < deleteMaxAttempts; attempt++ {
		if attempt > 0 {
			delay := deleteRetryBaseDelay << (attempt - 1)
			s.logger.Warn("DeleteSnapshot: transient failure for reservation id=%d, retrying in %s (attempt %d/%d)",
				res.ID, delay, attempt+1, deleteMaxAttempts)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			if err := s.slotRepo.DeleteByReservation(txCtx, res.ID); err != nil {
				return err
			}
			return s.reservationRepo.Delete(txCtx, res.ID)
		})

		if err == nil {
			s.logger.Info("DeleteSnapshot: reservation id=%d deleted", res.ID)
			return nil
		}
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		if !storage.IsRetryable(err) && !errors.Is(err, txmanager.ErrRetriesExhausted) {
			return fmt.Errorf("%w: DeleteSnapshot - transaction failed: %v", ErrInternal, err)
		}
		lastErr = err
	}

	s.logger.Error("DeleteSnapshot: retries exhausted for reservation id=%d: %v", res.ID, lastErr)
	return fmt.Errorf("%w: reservation id=%d: %v", ErrRetriesExhausted, res.ID, lastErr)
}

// Move переносит бронирование в другую аудиторию и/или на другой набор
// периодов одной транзакцией. Занятость новых ячеек проверяется по тем же
// правилам, что при создании (включая расчистку заглушек и сирот); если
// новая ячейка занята живым бронированием, транзакция откатывается и старые
// слоты остаются нетронутыми.
func (s *Service) Move(ctx context.Context, params models.MoveParams) (*domain.Reservation, error) {
	if err := domain.ValidatePeriods(params.NewPeriods); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var (
		moved   *domain.Reservation
		resDate time.Time
	)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		res, err := s.reservationRepo.GetByID(txCtx, params.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Move - read reservation: %v", ErrInternal, err)
		}
		resDate = res.Date

		// Собственные слоты бронирования не считаются конфликтом:
		// перенос внутри одной аудитории на пересекающиеся периоды допустим
		if err := s.claimCells(txCtx, params.NewRoomID, params.NewRoomName, res.Date, params.NewPeriods, &res.ID); err != nil {
			return err
		}

		if err := s.slotRepo.DeleteByReservation(txCtx, res.ID); err != nil {
			return fmt.Errorf("%w: Move - delete old slots: %v", ErrInternal, err)
		}

		res.RoomID = params.NewRoomID
		res.RoomName = params.NewRoomName
		res.Periods = params.NewPeriods
		res.StartTime = params.NewStartTime
		res.EndTime = params.NewEndTime
		res.PeriodLabel = params.NewPeriodLabel

		if err := s.reservationRepo.Update(txCtx, res); err != nil {
			return fmt.Errorf("%w: Move - update reservation: %v", ErrInternal, err)
		}

		if err := s.slotRepo.Insert(txCtx, buildReservationSlots(res)); err != nil {
			return err
		}

		moved = res
		return nil
	})

	if err != nil {
		if errors.Is(err, slotRepo.ErrDuplicateKey) {
			return nil, &SlotOccupiedError{
				RoomID:   params.NewRoomID,
				RoomName: params.NewRoomName,
				Date:     resDate,
				Period:   errorPeriodForDuplicate(params.NewPeriods),
			}
		}
		if errors.Is(err, ErrSlotOccupied) || errors.Is(err, ErrReservationNotFound) {
			return nil, err
		}
		s.logger.Error("Move: transaction failed for reservation id=%d: %v", params.ReservationID, err)
		return nil, err
	}

	s.logger.Info("Move: reservation id=%d moved to room=%d periods=%v",
		moved.ID, moved.RoomID, moved.Periods)
	return moved, nil
}

// PlaceLock проставляет заглушки шаблона в ячейки (roomID, date, periods)
// одной транзакцией. Существующие заглушки и осиротевшие слоты расчищаются;
// живое бронирование в любой из ячеек откатывает транзакцию с конфликтом
// занятости — разрешать его обязан вызывающий.
func (s *Service) PlaceLock(ctx context.Context, templateID int64, roomID int64, roomName string, date time.Time, periods []string, createdBy int64) error {
	if err := domain.ValidatePeriods(periods); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.claimCells(txCtx, roomID, roomName, date, periods, nil); err != nil {
			return err
		}

		slots := make([]*domain.Slot, 0, len(periods))
		for _, period := range periods {
			slots = append(slots, &domain.Slot{
				RoomID:     roomID,
				Date:       date,
				Period:     period,
				Kind:       domain.SlotKindTemplateLock,
				TemplateID: &templateID,
				CreatedBy:  createdBy,
			})
		}
		return s.slotRepo.Insert(txCtx, slots)
	})

	if err != nil {
		if errors.Is(err, slotRepo.ErrDuplicateKey) {
			return &SlotOccupiedError{
				RoomID:   roomID,
				RoomName: roomName,
				Date:     date,
				Period:   errorPeriodForDuplicate(periods),
			}
		}
		return err
	}

	s.logger.Info("PlaceLock: template id=%d locked room=%d date=%s periods=%v",
		templateID, roomID, date.Format(domain.DateFormat), periods)
	return nil
}

// Occupant возвращает снимок занятости ячейки, либо nil, если ячейка
// свободна. Осиротевший слот считается свободной ячейкой (его расчистит
// ближайшая претендующая транзакция).
func (s *Service) Occupant(ctx context.Context, roomID int64, date time.Time, period string) (*models.Occupant, error) {
	slot, err := s.slotRepo.Get(ctx, domain.NewSlotKey(roomID, date, period))
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: Occupant - read slot: %v", ErrInternal, err)
	}

	if slot.IsLock() {
		return &models.Occupant{Kind: domain.SlotKindTemplateLock, TemplateID: slot.TemplateID}, nil
	}

	if slot.ReservationID == nil {
		return nil, nil
	}

	res, err := s.reservationRepo.GetByID(ctx, *slot.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: Occupant - resolve reservation: %v", ErrInternal, err)
	}

	return &models.Occupant{
		Kind:        domain.SlotKindReservation,
		Reservation: res,
		TemplateID:  slot.TemplateID,
	}, nil
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return res, nil
}

// ListByRoomDate получает бронирования аудитории на дату
func (s *Service) ListByRoomDate(ctx context.Context, filter domain.RoomDayFilter) ([]*domain.Reservation, error) {
	reservations, err := s.reservationRepo.ListByRoomDate(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRoomDate - repository error: %v", ErrInternal, err)
	}
	return reservations, nil
}

// CleanupTemplate удаляет следы шаблона: заглушки и/или материализованные
// бронирования (вместе с их слотами), опционально в диапазоне дат.
// Выполняется одной транзакцией.
func (s *Service) CleanupTemplate(ctx context.Context, templateID int64, from, to *time.Time, removeLocks, removeOccurrences bool) (models.CleanupResult, error) {
	var result models.CleanupResult

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if removeLocks {
			kind := domain.SlotKindTemplateLock
			removed, err := s.slotRepo.DeleteByTemplate(txCtx, templateID, &kind, from, to)
			if err != nil {
				return fmt.Errorf("%w: CleanupTemplate - delete locks: %v", ErrInternal, err)
			}
			result.LocksRemoved = removed
		}

		if removeOccurrences {
			kind := domain.SlotKindReservation
			if _, err := s.slotRepo.DeleteByTemplate(txCtx, templateID, &kind, from, to); err != nil {
				return fmt.Errorf("%w: CleanupTemplate - delete occurrence slots: %v", ErrInternal, err)
			}
			removed, err := s.reservationRepo.DeleteByTemplate(txCtx, templateID, from, to)
			if err != nil {
				return fmt.Errorf("%w: CleanupTemplate - delete occurrences: %v", ErrInternal, err)
			}
			result.ReservationsRemoved = removed
		}

		return nil
	})

	if err != nil {
		return models.CleanupResult{}, err
	}

	s.logger.Info("CleanupTemplate: template id=%d, locks=%d, reservations=%d",
		templateID, result.LocksRemoved, result.ReservationsRemoved)
	return result, nil
}

// validateCreateParams проверяет минимальную корректность параметров создания
func validateCreateParams(params models.CreateParams) error {
	if params.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}
	if params.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if params.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := domain.ValidatePeriods(params.Periods); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if params.CreatedBy <= 0 {
		return fmt.Errorf("%w: createdBy must be positive", ErrInvalidInput)
	}
	return nil
}
