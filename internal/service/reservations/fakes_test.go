package reservations

import (
	"context"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SRS-RoomReservationService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SRS-RoomReservationService/internal/infra/storage/slot"
)

// fakeStore хранилище в памяти, общее для фейковых репозиториев.
// Повторяет транзакционные инварианты Postgres, существенные для движка:
// уникальность составного ключа слота и откат всех изменений при ошибке.
type fakeStore struct {
	mu           sync.Mutex
	reservations map[int64]*domain.Reservation
	slots        map[domain.SlotKey]*domain.Slot
	nextID       int64

	// transientSlotDeletes число преходящих сбоев, инжектируемых в
	// DeleteByReservation до первого успеха
	transientSlotDeletes int

	// duplicateKeyInserts число вставок, завершающихся нарушением
	// уникального ключа: конкурент занял ячейку между проверкой и коммитом
	duplicateKeyInserts int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		reservations: make(map[int64]*domain.Reservation),
		slots:        make(map[domain.SlotKey]*domain.Slot),
	}
}

type storeSnapshot struct {
	reservations map[int64]*domain.Reservation
	slots        map[domain.SlotKey]*domain.Slot
	nextID       int64
}

func (s *fakeStore) snapshot() storeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := storeSnapshot{
		reservations: make(map[int64]*domain.Reservation, len(s.reservations)),
		slots:        make(map[domain.SlotKey]*domain.Slot, len(s.slots)),
		nextID:       s.nextID,
	}
	for id, res := range s.reservations {
		snap.reservations[id] = res
	}
	for key, slot := range s.slots {
		snap.slots[key] = slot
	}
	return snap
}

func (s *fakeStore) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations = snap.reservations
	s.slots = snap.slots
	s.nextID = snap.nextID
}

func copyReservation(res *domain.Reservation) *domain.Reservation {
	clone := *res
	clone.Periods = append([]string(nil), res.Periods...)
	if res.TemplateID != nil {
		id := *res.TemplateID
		clone.TemplateID = &id
	}
	return &clone
}

// fakeTxManager сериализует транзакции мьютексом и откатывает хранилище
// к снимку при ошибке функции
type fakeTxManager struct {
	store *fakeStore
	mu    sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := m.store.snapshot()
	if err := fn(ctx); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

type fakeReservationRepo struct {
	store *fakeStore
}

func (r *fakeReservationRepo) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextID++
	clone := copyReservation(res)
	clone.ID = r.store.nextID
	clone.CreatedAt = time.Now()
	r.store.reservations[clone.ID] = clone
	return copyReservation(clone), nil
}

func (r *fakeReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	res, ok := r.store.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return copyReservation(res), nil
}

func (r *fakeReservationRepo) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Reservation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]*domain.Reservation, 0, len(ids))
	for _, id := range ids {
		if res, ok := r.store.reservations[id]; ok {
			result = append(result, copyReservation(res))
		}
	}
	return result, nil
}

func (r *fakeReservationRepo) ListByRoomDate(ctx context.Context, filter domain.RoomDayFilter) ([]*domain.Reservation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*domain.Reservation
	for _, res := range r.store.reservations {
		if res.RoomID == filter.RoomID && res.Date.Equal(filter.Date) {
			result = append(result, copyReservation(res))
		}
	}
	return result, nil
}

func (r *fakeReservationRepo) ListByTemplate(ctx context.Context, templateID int64, from, to *time.Time) ([]*domain.Reservation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*domain.Reservation
	for _, res := range r.store.reservations {
		if res.BelongsToTemplate(templateID) && inDateRange(res.Date, from, to) {
			result = append(result, copyReservation(res))
		}
	}
	return result, nil
}

func (r *fakeReservationRepo) Update(ctx context.Context, res *domain.Reservation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.reservations[res.ID]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	r.store.reservations[res.ID] = copyReservation(res)
	return nil
}

func (r *fakeReservationRepo) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.reservations[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	delete(r.store.reservations, id)
	return nil
}

func (r *fakeReservationRepo) DeleteByTemplate(ctx context.Context, templateID int64, from, to *time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var removed int64
	for id, res := range r.store.reservations {
		if res.BelongsToTemplate(templateID) && inDateRange(res.Date, from, to) {
			delete(r.store.reservations, id)
			removed++
		}
	}
	return removed, nil
}

type fakeSlotRepo struct {
	store *fakeStore
}

func (r *fakeSlotRepo) GetForKeys(ctx context.Context, roomID int64, date time.Time, periods []string) ([]*domain.Slot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*domain.Slot
	for _, period := range periods {
		if slot, ok := r.store.slots[domain.NewSlotKey(roomID, date, period)]; ok {
			clone := *slot
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeSlotRepo) Get(ctx context.Context, key domain.SlotKey) (*domain.Slot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	slot, ok := r.store.slots[key]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	clone := *slot
	return &clone, nil
}

func (r *fakeSlotRepo) Insert(ctx context.Context, slots []*domain.Slot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.duplicateKeyInserts > 0 {
		r.store.duplicateKeyInserts--
		return slotRepo.ErrDuplicateKey
	}
	for _, slot := range slots {
		if _, ok := r.store.slots[slot.Key()]; ok {
			return slotRepo.ErrDuplicateKey
		}
	}
	for _, slot := range slots {
		clone := *slot
		clone.CreatedAt = time.Now()
		r.store.slots[slot.Key()] = &clone
	}
	return nil
}

func (r *fakeSlotRepo) DeleteByKeys(ctx context.Context, roomID int64, date time.Time, periods []string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, period := range periods {
		delete(r.store.slots, domain.NewSlotKey(roomID, date, period))
	}
	return nil
}

func (r *fakeSlotRepo) DeleteByReservation(ctx context.Context, reservationID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.transientSlotDeletes > 0 {
		r.store.transientSlotDeletes--
		return &pq.Error{Code: "40001", Message: "could not serialize access"}
	}
	for key, slot := range r.store.slots {
		if slot.ReservationID != nil && *slot.ReservationID == reservationID {
			delete(r.store.slots, key)
		}
	}
	return nil
}

func (r *fakeSlotRepo) DeleteByTemplate(ctx context.Context, templateID int64, kind *domain.SlotKind, from, to *time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var removed int64
	for key, slot := range r.store.slots {
		if !slot.BelongsToTemplate(templateID) {
			continue
		}
		if kind != nil && slot.Kind != *kind {
			continue
		}
		if !inDateRange(slot.Date, from, to) {
			continue
		}
		delete(r.store.slots, key)
		removed++
	}
	return removed, nil
}

func inDateRange(date time.Time, from, to *time.Time) bool {
	if from != nil && date.Before(*from) {
		return false
	}
	if to != nil && date.After(*to) {
		return false
	}
	return true
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}
