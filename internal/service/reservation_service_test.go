package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkinglot/internal/db"
	apperrors "parkinglot/internal/errors"
	"parkinglot/internal/pricing"
	"parkinglot/internal/repository/memory"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

// newTestEngine builds a reservation service over the in-memory store with
// one floor and one four-wheeler slot, clock pinned to testNow.
func newTestEngine(t *testing.T) (*ReservationService, *memory.Store, *db.Slot) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	floor := &db.Floor{FloorNumber: 1, FloorName: "Ground Floor"}
	require.NoError(t, store.Floors().Create(ctx, floor))

	slot := &db.Slot{FloorID: floor.ID, SlotNumber: "G-01", VehicleType: db.FourWheeler, Status: db.SlotAvailable}
	require.NoError(t, store.Slots().Create(ctx, slot))

	detector := NewConflictDetector(store.Reservations())
	svc := NewReservationService(store.Slots(), store.Reservations(), detector, pricing.DefaultRates(), nil)
	svc.clock = fixedClock{now: testNow}
	return svc, store, slot
}

func validInput(slotID int64) CreateReservationInput {
	return CreateReservationInput{
		SlotID:        slotID,
		VehicleNumber: "KA05MH1234",
		VehicleType:   db.FourWheeler,
		StartTime:     testNow.Add(1 * time.Hour),
		EndTime:       testNow.Add(4 * time.Hour),
	}
}

func TestCreateReservation(t *testing.T) {
	svc, store, slot := newTestEngine(t)
	ctx := context.Background()

	res, err := svc.Create(ctx, validInput(slot.ID))
	require.NoError(t, err)

	assert.NotEmpty(t, res.Code)
	assert.Equal(t, slot.ID, res.SlotID)
	assert.Equal(t, db.ReservationActive, res.Status)
	assert.Equal(t, 3, res.DurationHours)
	assert.Equal(t, "90", res.TotalCost.String())

	stored, err := store.Reservations().GetByCode(ctx, res.Code)
	require.NoError(t, err)
	assert.Equal(t, res.Code, stored.Code)
}

func TestCreateReservationRoundsPartialHoursUp(t *testing.T) {
	svc, _, slot := newTestEngine(t)

	in := validInput(slot.ID)
	in.EndTime = in.StartTime.Add(2*time.Hour + time.Minute)

	res, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 3, res.DurationHours)
	assert.Equal(t, "90", res.TotalCost.String())
}

func TestCreateReservationValidation(t *testing.T) {
	svc, _, slot := newTestEngine(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreateReservationInput)
		kind   apperrors.Kind
	}{
		{
			name:   "end before start",
			mutate: func(in *CreateReservationInput) { in.StartTime, in.EndTime = in.EndTime, in.StartTime },
			kind:   apperrors.KindInvalidInterval,
		},
		{
			name:   "zero length window",
			mutate: func(in *CreateReservationInput) { in.EndTime = in.StartTime },
			kind:   apperrors.KindInvalidInterval,
		},
		{
			name: "start in the past",
			mutate: func(in *CreateReservationInput) {
				in.StartTime = testNow.Add(-time.Hour)
				in.EndTime = testNow.Add(time.Hour)
			},
			kind: apperrors.KindInvalidInterval,
		},
		{
			name:   "duration over twenty four hours",
			mutate: func(in *CreateReservationInput) { in.EndTime = in.StartTime.Add(25 * time.Hour) },
			kind:   apperrors.KindPolicyViolation,
		},
		{
			name:   "rounded duration over twenty four hours",
			mutate: func(in *CreateReservationInput) { in.EndTime = in.StartTime.Add(24*time.Hour + time.Minute) },
			kind:   apperrors.KindPolicyViolation,
		},
		{
			name:   "unknown slot",
			mutate: func(in *CreateReservationInput) { in.SlotID = 9999 },
			kind:   apperrors.KindNotFound,
		},
		{
			name:   "vehicle class mismatch",
			mutate: func(in *CreateReservationInput) { in.VehicleType = db.TwoWheeler },
			kind:   apperrors.KindClassMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput(slot.ID)
			tt.mutate(&in)
			_, err := svc.Create(ctx, in)
			require.Error(t, err)
			assert.True(t, apperrors.IsKind(err, tt.kind), "got kind %s, want %s", apperrors.KindOf(err), tt.kind)
		})
	}
}

func TestCreateReservationConflict(t *testing.T) {
	svc, _, slot := newTestEngine(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, validInput(slot.ID))
	require.NoError(t, err)

	// Same window again on the same slot.
	_, err = svc.Create(ctx, validInput(slot.ID))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	// Partial overlap also conflicts.
	in := validInput(slot.ID)
	in.StartTime = testNow.Add(3 * time.Hour)
	in.EndTime = testNow.Add(6 * time.Hour)
	_, err = svc.Create(ctx, in)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestCreateReservationBackToBack(t *testing.T) {
	svc, _, slot := newTestEngine(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, validInput(slot.ID))
	require.NoError(t, err)

	// A reservation starting exactly when the first ends does not conflict.
	in := validInput(slot.ID)
	in.StartTime = first.EndTime
	in.EndTime = first.EndTime.Add(2 * time.Hour)
	second, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.True(t, second.StartTime.Equal(first.EndTime))
}

func TestCreateReservationConcurrentSameSlot(t *testing.T) {
	svc, store, slot := newTestEngine(t)
	ctx := context.Background()

	const writers = 16
	var wg sync.WaitGroup
	errs := make([]error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, validInput(slot.ID))
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case apperrors.IsKind(err, apperrors.KindConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactly one writer must win")
	assert.Equal(t, writers-1, conflicts)

	active := db.ReservationActive
	all, err := store.Reservations().List(ctx, &active)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCancelReservation(t *testing.T) {
	svc, _, slot := newTestEngine(t)
	ctx := context.Background()

	res, err := svc.Create(ctx, validInput(slot.ID))
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, res.Code)
	require.NoError(t, err)
	assert.Equal(t, db.ReservationCancelled, cancelled.Status)

	// Cancelling again is not a silent success.
	_, err = svc.Cancel(ctx, res.Code)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	_, err = svc.Cancel(ctx, "no-such-code")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestCancelFreesTheWindow(t *testing.T) {
	svc, _, slot := newTestEngine(t)
	ctx := context.Background()

	res, err := svc.Create(ctx, validInput(slot.ID))
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, res.Code)
	require.NoError(t, err)

	// The same window books again once the claim is cancelled.
	rebooked, err := svc.Create(ctx, validInput(slot.ID))
	require.NoError(t, err)
	assert.NotEqual(t, res.Code, rebooked.Code)
}

func TestGetByCode(t *testing.T) {
	svc, _, slot := newTestEngine(t)
	ctx := context.Background()

	res, err := svc.Create(ctx, validInput(slot.ID))
	require.NoError(t, err)

	got, err := svc.GetByCode(ctx, res.Code)
	require.NoError(t, err)
	assert.Equal(t, res.Code, got.Code)

	_, err = svc.GetByCode(ctx, "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestListBySlotUnknownSlot(t *testing.T) {
	svc, _, _ := newTestEngine(t)

	_, err := svc.ListBySlot(context.Background(), 424242)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
