package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"parkinglot/internal/db"
	apperrors "parkinglot/internal/errors"
	"parkinglot/internal/interval"
	"parkinglot/internal/logger"
	"parkinglot/internal/pricing"
	"parkinglot/internal/repository"
)

// maxReservationHours caps a single booking's billable duration.
const maxReservationHours = 24

// Clock abstracts time.Now so forward-looking validation is testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// CreateReservationInput is what the transport layer hands the engine.
// VehicleNumber format is validated upstream.
type CreateReservationInput struct {
	SlotID        int64
	VehicleNumber string
	VehicleType   db.VehicleType
	StartTime     time.Time
	EndTime       time.Time
	ContactEmail  string
	ContactPhone  string
}

// ReservationService is the booking transaction. The conflict check and the
// commit run under a per-slot lock, so concurrent bookings on the same slot
// are strictly serialized while different slots proceed independently. The
// store's own non-overlap constraint backstops the lock.
type ReservationService struct {
	slots        repository.SlotStore
	reservations repository.ReservationStore
	detector     *ConflictDetector
	rates        pricing.RateTable
	notifier     Notifier
	clock        Clock

	slotLocks sync.Map // slot id -> *sync.Mutex
}

func NewReservationService(
	slots repository.SlotStore,
	reservations repository.ReservationStore,
	detector *ConflictDetector,
	rates pricing.RateTable,
	notifier Notifier,
) *ReservationService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ReservationService{
		slots:        slots,
		reservations: reservations,
		detector:     detector,
		rates:        rates,
		notifier:     notifier,
		clock:        systemClock{},
	}
}

func (s *ReservationService) lockSlot(id int64) *sync.Mutex {
	mu, _ := s.slotLocks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Create validates the request, re-checks for conflicts, and commits a new
// ACTIVE reservation with its derived duration and cost.
func (s *ReservationService) Create(ctx context.Context, in CreateReservationInput) (*db.Reservation, error) {
	iv, err := interval.New(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if !iv.Start.After(now) || !iv.End.After(now) {
		return nil, apperrors.New(apperrors.KindInvalidInterval, "reservation times must be in the future")
	}
	if iv.DurationHours() > maxReservationHours {
		return nil, apperrors.Newf(apperrors.KindPolicyViolation, "reservation duration cannot exceed %d hours", maxReservationHours)
	}

	slot, err := s.slots.GetByID(ctx, in.SlotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.KindNotFound, "parking slot %d not found", in.SlotID)
		}
		return nil, fmt.Errorf("resolving slot %d: %w", in.SlotID, err)
	}
	if !slot.Matches(in.VehicleType) {
		return nil, apperrors.Newf(apperrors.KindClassMismatch, "vehicle type %s does not match slot type %s", in.VehicleType, slot.VehicleType)
	}

	hours, cost, err := pricing.Quote(s.rates, in.VehicleType, iv)
	if err != nil {
		return nil, err
	}

	// Conflict re-check and commit are one atomic unit per slot.
	mu := s.lockSlot(slot.ID)
	mu.Lock()
	defer mu.Unlock()

	conflict, err := s.detector.HasConflict(ctx, slot.ID, iv, "")
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, apperrors.New(apperrors.KindConflict, "slot is already reserved for the requested time range")
	}

	res := &db.Reservation{
		Code:          uuid.NewString(),
		SlotID:        slot.ID,
		VehicleNumber: in.VehicleNumber,
		VehicleType:   in.VehicleType,
		StartTime:     iv.Start.UTC(),
		EndTime:       iv.End.UTC(),
		DurationHours: hours,
		TotalCost:     cost,
		Status:        db.ReservationActive,
		ContactEmail:  in.ContactEmail,
		ContactPhone:  in.ContactPhone,
	}
	if err := s.reservations.Insert(ctx, res); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			// The store's constraint caught a writer that slipped past the
			// pre-check, e.g. one running in another process.
			return nil, apperrors.Wrap(err, apperrors.KindConflict, "slot is already reserved for the requested time range")
		}
		return nil, fmt.Errorf("persisting reservation: %w", err)
	}

	logger.L().Info("reservation created",
		zap.String("code", res.Code),
		zap.Int64("slot_id", res.SlotID),
		zap.Int("duration_hours", res.DurationHours),
		zap.String("total_cost", res.TotalCost.String()),
	)
	s.notifier.ReservationBooked(res)
	return res, nil
}

// Cancel transitions an ACTIVE reservation to CANCELLED. Cancelling an
// unknown code or one that is already cancelled fails identically with a
// not-found error; a repeated cancel is never a silent success.
func (s *ReservationService) Cancel(ctx context.Context, code string) (*db.Reservation, error) {
	res, err := s.reservations.UpdateStatus(ctx, code, db.ReservationActive, db.ReservationCancelled)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.KindNotFound, "active reservation %s not found", code)
		}
		return nil, fmt.Errorf("cancelling reservation %s: %w", code, err)
	}

	logger.L().Info("reservation cancelled", zap.String("code", res.Code), zap.Int64("slot_id", res.SlotID))
	s.notifier.ReservationCancelled(res)
	return res, nil
}

// GetByCode fetches a single reservation, any status.
func (s *ReservationService) GetByCode(ctx context.Context, code string) (*db.Reservation, error) {
	res, err := s.reservations.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.KindNotFound, "reservation %s not found", code)
		}
		return nil, fmt.Errorf("querying reservation %s: %w", code, err)
	}
	return res, nil
}

// List returns reservations, optionally filtered by status.
func (s *ReservationService) List(ctx context.Context, status *db.ReservationStatus) ([]db.Reservation, error) {
	return s.reservations.List(ctx, status)
}

// ListBySlot returns a slot's full reservation history.
func (s *ReservationService) ListBySlot(ctx context.Context, slotID int64) ([]db.Reservation, error) {
	if _, err := s.slots.GetByID(ctx, slotID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.KindNotFound, "parking slot %d not found", slotID)
		}
		return nil, fmt.Errorf("resolving slot %d: %w", slotID, err)
	}
	return s.reservations.ListBySlot(ctx, slotID)
}
