// Package memory implements the repository interfaces on plain maps behind
// a mutex. It enforces the same non-overlap constraint the Postgres schema
// enforces, so the engine behaves identically against either store. Used by
// tests and local development.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"parkinglot/internal/db"
	"parkinglot/internal/interval"
	"parkinglot/internal/repository"
)

// Store holds all records. The per-interface views returned by Floors,
// Slots, Reservations, Jobs, and Admins share this state.
type Store struct {
	mu           sync.Mutex
	floors       map[int64]*db.Floor
	slots        map[int64]*db.Slot
	reservations map[string]*db.Reservation
	admins       map[string]*db.Admin
	nextID       int64
}

func NewStore() *Store {
	return &Store{
		floors:       make(map[int64]*db.Floor),
		slots:        make(map[int64]*db.Slot),
		reservations: make(map[string]*db.Reservation),
		admins:       make(map[string]*db.Admin),
	}
}

func (s *Store) Floors() repository.FloorStore             { return floorStore{s} }
func (s *Store) Slots() repository.SlotStore               { return slotStore{s} }
func (s *Store) Reservations() repository.ReservationStore { return reservationStore{s} }
func (s *Store) Jobs() repository.JobStore                 { return jobStore{s} }
func (s *Store) Admins() repository.AdminStore             { return adminStore{s} }

func (s *Store) nextSeq() int64 {
	s.nextID++
	return s.nextID
}

func clone[T any](v *T) *T {
	c := *v
	return &c
}

// --- floors ---

type floorStore struct{ s *Store }

func (v floorStore) Create(ctx context.Context, floor *db.Floor) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.floors {
		if f.FloorNumber == floor.FloorNumber {
			return repository.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	floor.ID = s.nextSeq()
	floor.CreatedAt = now
	floor.UpdatedAt = now
	s.floors[floor.ID] = clone(floor)
	return nil
}

func (v floorStore) GetByID(ctx context.Context, id int64) (*db.Floor, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.floors[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(f), nil
}

func (v floorStore) List(ctx context.Context) ([]db.Floor, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]db.Floor, 0, len(s.floors))
	for _, f := range s.floors {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FloorNumber < out[j].FloorNumber })
	return out, nil
}

func (v floorStore) IncrementTotalSlots(ctx context.Context, id int64) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.floors[id]
	if !ok {
		return repository.ErrNotFound
	}
	f.TotalSlots++
	f.UpdatedAt = time.Now().UTC()
	return nil
}

// --- slots ---

type slotStore struct{ s *Store }

func (v slotStore) Create(ctx context.Context, slot *db.Slot) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.floors[slot.FloorID]; !ok {
		return repository.ErrNotFound
	}
	for _, existing := range s.slots {
		if existing.FloorID == slot.FloorID && existing.SlotNumber == slot.SlotNumber {
			return repository.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	slot.ID = s.nextSeq()
	slot.CreatedAt = now
	slot.UpdatedAt = now
	s.slots[slot.ID] = clone(slot)
	return nil
}

func (v slotStore) GetByID(ctx context.Context, id int64) (*db.Slot, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(slot), nil
}

func (v slotStore) List(ctx context.Context, vehicleType *db.VehicleType) ([]db.Slot, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []db.Slot
	for _, slot := range s.slots {
		if vehicleType != nil && slot.VehicleType != *vehicleType {
			continue
		}
		out = append(out, *slot)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (v slotStore) ListByFloor(ctx context.Context, floorID int64) ([]db.Slot, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []db.Slot
	for _, slot := range s.slots {
		if slot.FloorID == floorID {
			out = append(out, *slot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SlotNumber < out[j].SlotNumber })
	return out, nil
}

func (v slotStore) UpdateStatus(ctx context.Context, id int64, status db.SlotStatus) (*db.Slot, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	slot.Status = status
	slot.UpdatedAt = time.Now().UTC()
	return clone(slot), nil
}

// --- reservations ---

type reservationStore struct{ s *Store }

func (v reservationStore) Insert(ctx context.Context, res *db.Reservation) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	candidate := interval.Interval{Start: res.StartTime, End: res.EndTime}
	for _, existing := range s.reservations {
		if existing.SlotID != res.SlotID || existing.Status != db.ReservationActive {
			continue
		}
		if candidate.Overlaps(interval.Interval{Start: existing.StartTime, End: existing.EndTime}) {
			return repository.ErrOverlap
		}
	}
	now := time.Now().UTC()
	res.ID = s.nextSeq()
	res.CreatedAt = now
	res.UpdatedAt = now
	s.reservations[res.Code] = clone(res)
	return nil
}

func (v reservationStore) GetByCode(ctx context.Context, code string) (*db.Reservation, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.reservations[code]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(res), nil
}

func (v reservationStore) List(ctx context.Context, status *db.ReservationStatus) ([]db.Reservation, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []db.Reservation
	for _, res := range s.reservations {
		if status != nil && res.Status != *status {
			continue
		}
		out = append(out, *res)
	}
	sortReservations(out)
	return out, nil
}

func (v reservationStore) ListBySlot(ctx context.Context, slotID int64) ([]db.Reservation, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []db.Reservation
	for _, res := range s.reservations {
		if res.SlotID == slotID {
			out = append(out, *res)
		}
	}
	sortReservations(out)
	return out, nil
}

func (v reservationStore) ListActiveBySlot(ctx context.Context, slotID int64) ([]db.Reservation, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []db.Reservation
	for _, res := range s.reservations {
		if res.SlotID == slotID && res.Status == db.ReservationActive {
			out = append(out, *res)
		}
	}
	sortReservations(out)
	return out, nil
}

func (v reservationStore) UpdateStatus(ctx context.Context, code string, expected, next db.ReservationStatus) (*db.Reservation, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.reservations[code]
	if !ok || res.Status != expected {
		return nil, repository.ErrNotFound
	}
	res.Status = next
	res.UpdatedAt = time.Now().UTC()
	return clone(res), nil
}

func sortReservations(rs []db.Reservation) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].StartTime.Equal(rs[j].StartTime) {
			return rs[i].ID < rs[j].ID
		}
		return rs[i].StartTime.Before(rs[j].StartTime)
	})
}

// --- jobs ---

type jobStore struct{ s *Store }

func (v jobStore) MarkSlotsOccupied(ctx context.Context, now time.Time) (int64, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	var affected int64
	for _, slot := range s.slots {
		if slot.Status == db.SlotAvailable && s.coveredAtLocked(slot.ID, now) {
			slot.Status = db.SlotOccupied
			slot.UpdatedAt = now
			affected++
		}
	}
	return affected, nil
}

func (v jobStore) MarkSlotsVacated(ctx context.Context, now time.Time) (int64, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	var affected int64
	for _, slot := range s.slots {
		if slot.Status == db.SlotOccupied && !s.coveredAtLocked(slot.ID, now) {
			slot.Status = db.SlotAvailable
			slot.UpdatedAt = now
			affected++
		}
	}
	return affected, nil
}

func (s *Store) coveredAtLocked(slotID int64, now time.Time) bool {
	for _, res := range s.reservations {
		if res.SlotID == slotID && res.Status == db.ReservationActive &&
			!res.StartTime.After(now) && res.EndTime.After(now) {
			return true
		}
	}
	return false
}

// --- admins ---

type adminStore struct{ s *Store }

func (v adminStore) GetByEmail(ctx context.Context, email string) (*db.Admin, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	admin, ok := s.admins[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(admin), nil
}

func (v adminStore) Create(ctx context.Context, email, passwordHash string) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.admins[email]; ok {
		return repository.ErrDuplicate
	}
	s.admins[email] = &db.Admin{ID: s.nextSeq(), Email: email, PasswordHash: passwordHash}
	return nil
}
