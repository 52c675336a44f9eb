package reservations

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	"github.com/m04kA/SRS-RoomReservationService/internal/service/reservations/models"
)

func newTestService() (*Service, *fakeStore) {
	store := newFakeStore()
	svc := NewService(
		&fakeReservationRepo{store: store},
		&fakeSlotRepo{store: store},
		&fakeTxManager{store: store},
		nopLogger{},
	)
	return svc, store
}

func testDate() time.Time {
	return time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
}

func createParams(roomID int64, periods ...string) models.CreateParams {
	return models.CreateParams{
		RoomID:      roomID,
		RoomName:    "Аудитория 101",
		Title:       "Алгебра",
		OwnerName:   "Иванов И.И.",
		Date:        testDate(),
		Periods:     periods,
		StartTime:   "09:00",
		EndTime:     "10:40",
		PeriodLabel: "2–3",
		CreatedBy:   42,
	}
}

func TestService_Create(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	res, err := svc.Create(ctx, createParams(101, "2", "3"))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.NotZero(t, res.ID)

	// на каждый период создан слот с обратной ссылкой
	for _, period := range []string{"2", "3"} {
		slot, ok := store.slots[domain.NewSlotKey(101, testDate(), period)]
		require.True(t, ok, "slot for period %s must exist", period)
		assert.Equal(t, domain.SlotKindReservation, slot.Kind)
		require.NotNil(t, slot.ReservationID)
		assert.Equal(t, res.ID, *slot.ReservationID)
	}
}

func TestService_Create_InvalidParams(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	params := createParams(101, "2")
	params.Title = ""
	_, err := svc.Create(ctx, params)
	assert.ErrorIs(t, err, ErrInvalidInput)

	params = createParams(101, "x")
	_, err = svc.Create(ctx, params)
	assert.ErrorIs(t, err, ErrInvalidInput)

	params = createParams(0, "2")
	_, err = svc.Create(ctx, params)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Create_Conflict(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, createParams(101, "3"))
	require.NoError(t, err)

	// пересечение по одному периоду блокирует вторую заявку целиком
	_, err = svc.Create(ctx, createParams(101, "2", "3"))
	require.ErrorIs(t, err, ErrSlotOccupied)

	var occupied *SlotOccupiedError
	require.ErrorAs(t, err, &occupied)
	assert.Equal(t, int64(101), occupied.RoomID)
	assert.Equal(t, "3", occupied.Period)
	assert.Equal(t, first.ID, occupied.OccupantID)

	// атомарность: слот свободного периода "2" не должен был остаться
	_, ok := store.slots[domain.NewSlotKey(101, testDate(), "2")]
	assert.False(t, ok, "partial slot must be rolled back")
	assert.Len(t, store.reservations, 1)
}

func TestService_Create_ConcurrentSameCell(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, createParams(101, "5"))
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, ErrSlotOccupied):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, won, "exactly one attempt must win the cell")
	assert.Equal(t, attempts-1, lost)
	assert.Len(t, store.reservations, 1)
}

func TestService_Create_SweepsLockAndOrphan(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	tmplID := int64(7)
	missingRes := int64(999)
	store.slots[domain.NewSlotKey(101, testDate(), "2")] = &domain.Slot{
		RoomID: 101, Date: testDate(), Period: "2",
		Kind: domain.SlotKindTemplateLock, TemplateID: &tmplID,
	}
	// осиротевший слот: ссылка на несуществующее бронирование
	store.slots[domain.NewSlotKey(101, testDate(), "3")] = &domain.Slot{
		RoomID: 101, Date: testDate(), Period: "3",
		Kind: domain.SlotKindReservation, ReservationID: &missingRes,
	}

	res, err := svc.Create(ctx, createParams(101, "2", "3"))
	require.NoError(t, err)

	for _, period := range []string{"2", "3"} {
		slot := store.slots[domain.NewSlotKey(101, testDate(), period)]
		require.NotNil(t, slot)
		assert.Equal(t, domain.SlotKindReservation, slot.Kind)
		assert.Equal(t, res.ID, *slot.ReservationID)
	}
}

func TestService_Create_ConflictRollsBackSweep(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	// живое бронирование в периоде "3"
	_, err := svc.Create(ctx, createParams(101, "3"))
	require.NoError(t, err)

	// заглушка в периоде "2" того же дня
	tmplID := int64(7)
	store.slots[domain.NewSlotKey(101, testDate(), "2")] = &domain.Slot{
		RoomID: 101, Date: testDate(), Period: "2",
		Kind: domain.SlotKindTemplateLock, TemplateID: &tmplID,
	}

	_, err = svc.Create(ctx, createParams(101, "2", "3"))
	require.ErrorIs(t, err, ErrSlotOccupied)

	// расчистка заглушки выполнялась в откаченной транзакции
	slot, ok := store.slots[domain.NewSlotKey(101, testDate(), "2")]
	require.True(t, ok, "swept lock must be restored by rollback")
	assert.True(t, slot.IsLock())
}

func TestService_Move(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	res, err := svc.Create(ctx, createParams(101, "2", "3"))
	require.NoError(t, err)

	moved, err := svc.Move(ctx, models.MoveParams{
		ReservationID:  res.ID,
		NewRoomID:      202,
		NewRoomName:    "Аудитория 202",
		NewPeriods:     []string{"4"},
		NewStartTime:   "11:00",
		NewEndTime:     "11:45",
		NewPeriodLabel: "4",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(202), moved.RoomID)
	assert.Equal(t, []string{"4"}, moved.Periods)

	// старые слоты удалены, новый на месте
	_, ok := store.slots[domain.NewSlotKey(101, testDate(), "2")]
	assert.False(t, ok)
	_, ok = store.slots[domain.NewSlotKey(101, testDate(), "3")]
	assert.False(t, ok)
	slot, ok := store.slots[domain.NewSlotKey(202, testDate(), "4")]
	require.True(t, ok)
	assert.Equal(t, res.ID, *slot.ReservationID)
}

func TestService_Move_Conflict(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	res, err := svc.Create(ctx, createParams(101, "2"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createParams(202, "4"))
	require.NoError(t, err)

	_, err = svc.Move(ctx, models.MoveParams{
		ReservationID: res.ID,
		NewRoomID:     202,
		NewRoomName:   "Аудитория 202",
		NewPeriods:    []string{"4"},
	})
	require.ErrorIs(t, err, ErrSlotOccupied)

	// неудачный перенос не трогает исходное бронирование и его слоты
	current, err := svc.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(101), current.RoomID)
	assert.Equal(t, []string{"2"}, current.Periods)
	slot, ok := store.slots[domain.NewSlotKey(101, testDate(), "2")]
	require.True(t, ok)
	assert.Equal(t, res.ID, *slot.ReservationID)
}

func TestService_Move_OverlappingOwnPeriods(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	res, err := svc.Create(ctx, createParams(101, "2", "3"))
	require.NoError(t, err)

	// сдвиг внутри той же аудитории на пересекающийся набор
	moved, err := svc.Move(ctx, models.MoveParams{
		ReservationID: res.ID,
		NewRoomID:     101,
		NewRoomName:   "Аудитория 101",
		NewPeriods:    []string{"3", "4"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "4"}, moved.Periods)

	_, ok := store.slots[domain.NewSlotKey(101, testDate(), "2")]
	assert.False(t, ok)
	for _, period := range []string{"3", "4"} {
		_, ok := store.slots[domain.NewSlotKey(101, testDate(), period)]
		assert.True(t, ok, "slot for period %s must exist", period)
	}
}

func TestService_Move_LostCommitRace(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	res, err := svc.Create(ctx, createParams(101, "2"))
	require.NoError(t, err)

	// конкурент занимает целевую ячейку между проверкой и коммитом:
	// вставка новых слотов падает на уникальном ключе
	store.duplicateKeyInserts = 1
	_, err = svc.Move(ctx, models.MoveParams{
		ReservationID: res.ID,
		NewRoomID:     202,
		NewRoomName:   "Аудитория 202",
		NewPeriods:    []string{"4"},
	})
	require.ErrorIs(t, err, ErrSlotOccupied)

	// ошибка обязана называть все три координаты ячейки
	var occupied *SlotOccupiedError
	require.ErrorAs(t, err, &occupied)
	assert.Equal(t, int64(202), occupied.RoomID)
	assert.Equal(t, testDate(), occupied.Date)
	assert.Equal(t, "4", occupied.Period)

	// бронирование осталось на прежнем месте
	current, err := svc.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(101), current.RoomID)
	_, ok := store.slots[domain.NewSlotKey(101, testDate(), "2")]
	assert.True(t, ok)
}

func TestService_Move_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Move(context.Background(), models.MoveParams{
		ReservationID: 555,
		NewRoomID:     101,
		NewPeriods:    []string{"2"},
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestService_Delete(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	res, err := svc.Create(ctx, createParams(101, "2", "3"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, res.ID))
	assert.Empty(t, store.reservations)
	assert.Empty(t, store.slots)

	assert.ErrorIs(t, svc.Delete(ctx, res.ID), ErrReservationNotFound)
}

func TestService_Delete_RetriesTransientFailure(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	res, err := svc.Create(ctx, createParams(101, "2"))
	require.NoError(t, err)

	store.transientSlotDeletes = 2
	require.NoError(t, svc.Delete(ctx, res.ID))
	assert.Empty(t, store.reservations)
	assert.Empty(t, store.slots)
}

func TestService_Delete_RetriesExhausted(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	res, err := svc.Create(ctx, createParams(101, "2"))
	require.NoError(t, err)

	store.transientSlotDeletes = 10
	err = svc.Delete(ctx, res.ID)
	require.ErrorIs(t, err, ErrRetriesExhausted)

	// бронирование не тронуто: каждая попытка откатывалась целиком
	assert.Len(t, store.reservations, 1)
	assert.Len(t, store.slots, 1)
}

func TestService_PlaceLock(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	err := svc.PlaceLock(ctx, 7, 101, "Аудитория 101", testDate(), []string{"2", "3"}, 1)
	require.NoError(t, err)

	for _, period := range []string{"2", "3"} {
		slot, ok := store.slots[domain.NewSlotKey(101, testDate(), period)]
		require.True(t, ok)
		assert.True(t, slot.IsLock())
		assert.True(t, slot.BelongsToTemplate(7))
	}

	// повторная простановка того же шаблона проходит: старые заглушки
	// расчищаются и ставятся заново
	require.NoError(t, svc.PlaceLock(ctx, 7, 101, "Аудитория 101", testDate(), []string{"2", "3"}, 1))
}

func TestService_PlaceLock_BlockedByReservation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, createParams(101, "3"))
	require.NoError(t, err)

	err = svc.PlaceLock(ctx, 7, 101, "Аудитория 101", testDate(), []string{"2", "3"}, 1)
	require.ErrorIs(t, err, ErrSlotOccupied)

	var occupied *SlotOccupiedError
	require.ErrorAs(t, err, &occupied)
	assert.Equal(t, "3", occupied.Period)
}

func TestService_Occupant(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	// свободная ячейка
	occ, err := svc.Occupant(ctx, 101, testDate(), "2")
	require.NoError(t, err)
	assert.Nil(t, occ)

	// живое бронирование
	res, err := svc.Create(ctx, createParams(101, "2"))
	require.NoError(t, err)
	occ, err = svc.Occupant(ctx, 101, testDate(), "2")
	require.NoError(t, err)
	require.NotNil(t, occ)
	assert.False(t, occ.IsLock())
	assert.Equal(t, res.ID, occ.Reservation.ID)

	// заглушка шаблона
	require.NoError(t, svc.PlaceLock(ctx, 7, 101, "Аудитория 101", testDate(), []string{"4"}, 1))
	occ, err = svc.Occupant(ctx, 101, testDate(), "4")
	require.NoError(t, err)
	require.NotNil(t, occ)
	assert.True(t, occ.IsLock())
	require.NotNil(t, occ.TemplateID)
	assert.Equal(t, int64(7), *occ.TemplateID)

	// осиротевший слот эквивалентен свободной ячейке
	missing := int64(999)
	store.slots[domain.NewSlotKey(101, testDate(), "5")] = &domain.Slot{
		RoomID: 101, Date: testDate(), Period: "5",
		Kind: domain.SlotKindReservation, ReservationID: &missing,
	}
	occ, err = svc.Occupant(ctx, 101, testDate(), "5")
	require.NoError(t, err)
	assert.Nil(t, occ)
}

func TestService_CleanupTemplate(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	tmplID := int64(7)

	// материализованное бронирование шаблона
	params := createParams(101, "2")
	params.TemplateID = &tmplID
	_, err := svc.Create(ctx, params)
	require.NoError(t, err)

	// заглушка того же шаблона в другой ячейке
	require.NoError(t, svc.PlaceLock(ctx, tmplID, 202, "Аудитория 202", testDate(), []string{"3"}, 1))

	// ручное бронирование не должно пострадать
	manual, err := svc.Create(ctx, createParams(303, "2"))
	require.NoError(t, err)

	result, err := svc.CleanupTemplate(ctx, tmplID, nil, nil, true, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.LocksRemoved)
	assert.Equal(t, int64(1), result.ReservationsRemoved)

	assert.Len(t, store.reservations, 1)
	_, ok := store.reservations[manual.ID]
	assert.True(t, ok)
	assert.Len(t, store.slots, 1)
}

func TestService_CleanupTemplate_LocksOnly(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	tmplID := int64(7)
	params := createParams(101, "2")
	params.TemplateID = &tmplID
	res, err := svc.Create(ctx, params)
	require.NoError(t, err)
	require.NoError(t, svc.PlaceLock(ctx, tmplID, 202, "Аудитория 202", testDate(), []string{"3"}, 1))

	result, err := svc.CleanupTemplate(ctx, tmplID, nil, nil, true, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.LocksRemoved)
	assert.Zero(t, result.ReservationsRemoved)

	_, ok := store.reservations[res.ID]
	assert.True(t, ok, "materialized occurrence must survive locks-only cleanup")
}
