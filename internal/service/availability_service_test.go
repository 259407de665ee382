package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkinglot/internal/db"
	apperrors "parkinglot/internal/errors"
	"parkinglot/internal/pricing"
	"parkinglot/internal/repository/memory"
)

// seedLot creates one floor with n four-wheeler slots and returns the
// availability service plus the booking service sharing the same store.
func seedLot(t *testing.T, n int) (*AvailabilityService, *ReservationService, []db.Slot) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	floor := &db.Floor{FloorNumber: 1, FloorName: "Ground Floor"}
	require.NoError(t, store.Floors().Create(ctx, floor))

	slots := make([]db.Slot, 0, n)
	for i := 0; i < n; i++ {
		slot := &db.Slot{FloorID: floor.ID, SlotNumber: fmt.Sprintf("G-%02d", i+1), VehicleType: db.FourWheeler, Status: db.SlotAvailable}
		require.NoError(t, store.Slots().Create(ctx, slot))
		slots = append(slots, *slot)
	}

	detector := NewConflictDetector(store.Reservations())
	booking := NewReservationService(store.Slots(), store.Reservations(), detector, pricing.DefaultRates(), nil)
	booking.clock = fixedClock{now: testNow}
	return NewAvailabilityService(store.Slots(), detector), booking, slots
}

func TestFindAvailableExcludesBookedSlots(t *testing.T) {
	avail, booking, slots := seedLot(t, 2)
	ctx := context.Background()

	start := testNow.Add(time.Hour)
	end := testNow.Add(3 * time.Hour)

	in := validInput(slots[0].ID)
	in.StartTime, in.EndTime = start, end
	_, err := booking.Create(ctx, in)
	require.NoError(t, err)

	page, err := avail.FindAvailable(ctx, start, end, nil, 0, 10, SortByID)
	require.NoError(t, err)
	require.Len(t, page.Slots, 1)
	assert.Equal(t, slots[1].ID, page.Slots[0].ID)
	assert.Equal(t, 1, page.TotalCount)

	// A disjoint later window sees both slots.
	page, err = avail.FindAvailable(ctx, end, end.Add(time.Hour), nil, 0, 10, SortByID)
	require.NoError(t, err)
	assert.Len(t, page.Slots, 2)
	assert.Equal(t, 2, page.TotalCount)
}

func TestFindAvailableBoundaryWindowIsFree(t *testing.T) {
	avail, booking, slots := seedLot(t, 1)
	ctx := context.Background()

	start := testNow.Add(time.Hour)
	end := testNow.Add(3 * time.Hour)
	in := validInput(slots[0].ID)
	in.StartTime, in.EndTime = start, end
	_, err := booking.Create(ctx, in)
	require.NoError(t, err)

	// Window ending exactly at the reservation start does not collide.
	page, err := avail.FindAvailable(ctx, start.Add(-time.Hour), start, nil, 0, 10, SortByID)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)
}

func TestFindAvailableVehicleTypeFilter(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	floor := &db.Floor{FloorNumber: 1, FloorName: "Ground Floor"}
	require.NoError(t, store.Floors().Create(ctx, floor))
	require.NoError(t, store.Slots().Create(ctx, &db.Slot{FloorID: floor.ID, SlotNumber: "G-01", VehicleType: db.TwoWheeler}))
	require.NoError(t, store.Slots().Create(ctx, &db.Slot{FloorID: floor.ID, SlotNumber: "G-02", VehicleType: db.FourWheeler}))

	avail := NewAvailabilityService(store.Slots(), NewConflictDetector(store.Reservations()))

	two := db.TwoWheeler
	page, err := avail.FindAvailable(ctx, testNow, testNow.Add(time.Hour), &two, 0, 10, SortByID)
	require.NoError(t, err)
	require.Len(t, page.Slots, 1)
	assert.Equal(t, db.TwoWheeler, page.Slots[0].VehicleType)
}

func TestFindAvailablePagination(t *testing.T) {
	avail, _, _ := seedLot(t, 25)
	ctx := context.Background()

	start := testNow.Add(time.Hour)
	end := testNow.Add(2 * time.Hour)

	page0, err := avail.FindAvailable(ctx, start, end, nil, 0, 10, SortByID)
	require.NoError(t, err)
	assert.Len(t, page0.Slots, 10)
	assert.Equal(t, 25, page0.TotalCount)

	page1, err := avail.FindAvailable(ctx, start, end, nil, 1, 10, SortByID)
	require.NoError(t, err)
	assert.Len(t, page1.Slots, 10)

	page2, err := avail.FindAvailable(ctx, start, end, nil, 2, 10, SortByID)
	require.NoError(t, err)
	assert.Len(t, page2.Slots, 5)

	// Pages are disjoint and ordered by id.
	assert.Less(t, page0.Slots[9].ID, page1.Slots[0].ID)
	assert.Less(t, page1.Slots[9].ID, page2.Slots[0].ID)

	// Past the end: empty page, same total.
	page9, err := avail.FindAvailable(ctx, start, end, nil, 9, 10, SortByID)
	require.NoError(t, err)
	assert.Empty(t, page9.Slots)
	assert.Equal(t, 25, page9.TotalCount)
}

func TestFindAvailableSortKeys(t *testing.T) {
	avail, _, _ := seedLot(t, 3)
	ctx := context.Background()

	start := testNow.Add(time.Hour)
	end := testNow.Add(2 * time.Hour)

	bySlotNumber, err := avail.FindAvailable(ctx, start, end, nil, 0, 10, SortBySlotNumber)
	require.NoError(t, err)
	require.Len(t, bySlotNumber.Slots, 3)
	assert.True(t, bySlotNumber.Slots[0].SlotNumber < bySlotNumber.Slots[1].SlotNumber)

	byFloor, err := avail.FindAvailable(ctx, start, end, nil, 0, 10, SortByFloor)
	require.NoError(t, err)
	assert.Len(t, byFloor.Slots, 3)
}

func TestFindAvailableBadArguments(t *testing.T) {
	avail, _, _ := seedLot(t, 1)
	ctx := context.Background()

	start := testNow.Add(time.Hour)
	end := testNow.Add(2 * time.Hour)

	_, err := avail.FindAvailable(ctx, end, start, nil, 0, 10, SortByID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInterval))

	_, err = avail.FindAvailable(ctx, start, end, nil, -1, 10, SortByID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))

	_, err = avail.FindAvailable(ctx, start, end, nil, 0, 0, SortByID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))

	_, err = avail.FindAvailable(ctx, start, end, nil, 0, 10, "color")
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
}
