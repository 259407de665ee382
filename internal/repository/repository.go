// Package repository defines the persistence collaborator interfaces the
// engine operates against, plus the sentinel errors every implementation
// returns. The engine only ever sees these interfaces; how records are
// durably stored is the implementation's business.
package repository

import (
	"context"
	"errors"
	"time"

	"parkinglot/internal/db"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
	// ErrOverlap is returned by ReservationStore.Insert when the store's
	// non-overlap constraint rejects the row. It is the losing writer's
	// signal under concurrent bookings on the same slot.
	ErrOverlap = errors.New("overlapping active reservation")
)

type FloorStore interface {
	Create(ctx context.Context, floor *db.Floor) error
	GetByID(ctx context.Context, id int64) (*db.Floor, error)
	List(ctx context.Context) ([]db.Floor, error)
	IncrementTotalSlots(ctx context.Context, id int64) error
}

type SlotStore interface {
	Create(ctx context.Context, slot *db.Slot) error
	GetByID(ctx context.Context, id int64) (*db.Slot, error)
	// List returns all slots, or only those of the given class when the
	// filter is non-nil, ordered by id ascending.
	List(ctx context.Context, vehicleType *db.VehicleType) ([]db.Slot, error)
	ListByFloor(ctx context.Context, floorID int64) ([]db.Slot, error)
	UpdateStatus(ctx context.Context, id int64, status db.SlotStatus) (*db.Slot, error)
}

type ReservationStore interface {
	// Insert persists a new reservation. Returns ErrOverlap when an ACTIVE
	// reservation on the same slot overlaps the new one.
	Insert(ctx context.Context, res *db.Reservation) error
	GetByCode(ctx context.Context, code string) (*db.Reservation, error)
	List(ctx context.Context, status *db.ReservationStatus) ([]db.Reservation, error)
	ListBySlot(ctx context.Context, slotID int64) ([]db.Reservation, error)
	ListActiveBySlot(ctx context.Context, slotID int64) ([]db.Reservation, error)
	// UpdateStatus performs a conditional transition: the row is updated
	// only when its current status equals expected. Returns ErrNotFound
	// when no row matches, which makes cancellation safe to race.
	UpdateStatus(ctx context.Context, code string, expected, next db.ReservationStatus) (*db.Reservation, error)
}

// JobStore backs the periodic slot status sync. The status flag is
// informational; conflicts never consult it.
type JobStore interface {
	// MarkSlotsOccupied flips AVAILABLE slots covered by an ACTIVE
	// reservation at instant now to OCCUPIED. Returns rows affected.
	MarkSlotsOccupied(ctx context.Context, now time.Time) (int64, error)
	// MarkSlotsVacated flips OCCUPIED slots with no covering ACTIVE
	// reservation at instant now back to AVAILABLE. Returns rows affected.
	MarkSlotsVacated(ctx context.Context, now time.Time) (int64, error)
}

type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (*db.Admin, error)
	Create(ctx context.Context, email, passwordHash string) error
}
