package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkinglot/internal/db"
	"parkinglot/internal/repository"
)

func TestInsertRejectsOverlap(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	base := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.Reservations().Insert(ctx, &db.Reservation{
		Code: "a", SlotID: 1, StartTime: base, EndTime: base.Add(2 * time.Hour), Status: db.ReservationActive,
	}))

	// Overlapping ACTIVE claim on the same slot is rejected.
	err := store.Reservations().Insert(ctx, &db.Reservation{
		Code: "b", SlotID: 1, StartTime: base.Add(time.Hour), EndTime: base.Add(3 * time.Hour), Status: db.ReservationActive,
	})
	assert.ErrorIs(t, err, repository.ErrOverlap)

	// Same window on a different slot is fine.
	require.NoError(t, store.Reservations().Insert(ctx, &db.Reservation{
		Code: "c", SlotID: 2, StartTime: base, EndTime: base.Add(2 * time.Hour), Status: db.ReservationActive,
	}))

	// Touching intervals on the same slot are fine.
	require.NoError(t, store.Reservations().Insert(ctx, &db.Reservation{
		Code: "d", SlotID: 1, StartTime: base.Add(2 * time.Hour), EndTime: base.Add(3 * time.Hour), Status: db.ReservationActive,
	}))
}

func TestUpdateStatusIsConditional(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	base := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.Reservations().Insert(ctx, &db.Reservation{
		Code: "a", SlotID: 1, StartTime: base, EndTime: base.Add(time.Hour), Status: db.ReservationActive,
	}))

	res, err := store.Reservations().UpdateStatus(ctx, "a", db.ReservationActive, db.ReservationCancelled)
	require.NoError(t, err)
	assert.Equal(t, db.ReservationCancelled, res.Status)

	// Status no longer matches the expectation.
	_, err = store.Reservations().UpdateStatus(ctx, "a", db.ReservationActive, db.ReservationCancelled)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = store.Reservations().UpdateStatus(ctx, "ghost", db.ReservationActive, db.ReservationCancelled)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFloorAndSlotConstraints(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	floor := &db.Floor{FloorNumber: 1, FloorName: "Ground Floor"}
	require.NoError(t, store.Floors().Create(ctx, floor))

	err := store.Floors().Create(ctx, &db.Floor{FloorNumber: 1, FloorName: "Duplicate"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	slot := &db.Slot{FloorID: floor.ID, SlotNumber: "G-01", VehicleType: db.TwoWheeler}
	require.NoError(t, store.Slots().Create(ctx, slot))

	err = store.Slots().Create(ctx, &db.Slot{FloorID: floor.ID, SlotNumber: "G-01", VehicleType: db.FourWheeler})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	err = store.Slots().Create(ctx, &db.Slot{FloorID: 999, SlotNumber: "X-01", VehicleType: db.FourWheeler})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, store.Floors().IncrementTotalSlots(ctx, floor.ID))
	got, err := store.Floors().GetByID(ctx, floor.ID)
	require.NoError(t, err)
	assert.Equal(t, floor.TotalSlots+1, got.TotalSlots)
}
