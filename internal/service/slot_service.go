package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"parkinglot/internal/db"
	apperrors "parkinglot/internal/errors"
	"parkinglot/internal/logger"
	"parkinglot/internal/repository"
)

type CreateSlotInput struct {
	FloorID     int64
	SlotNumber  string
	VehicleType db.VehicleType
}

// SlotService is the registry of bookable slots: typed accessors for the
// booking and availability paths plus the administrative create/status
// operations. A slot's vehicle class is fixed at creation.
type SlotService struct {
	slots  repository.SlotStore
	floors repository.FloorStore
}

func NewSlotService(slots repository.SlotStore, floors repository.FloorStore) *SlotService {
	return &SlotService{slots: slots, floors: floors}
}

func (s *SlotService) Create(ctx context.Context, in CreateSlotInput) (*db.Slot, error) {
	if _, err := s.floors.GetByID(ctx, in.FloorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.KindNotFound, "floor %d not found", in.FloorID)
		}
		return nil, fmt.Errorf("resolving floor %d: %w", in.FloorID, err)
	}

	slot := &db.Slot{
		FloorID:     in.FloorID,
		SlotNumber:  in.SlotNumber,
		VehicleType: in.VehicleType,
		Status:      db.SlotAvailable,
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Newf(apperrors.KindConflict, "slot %s already exists on floor %d", in.SlotNumber, in.FloorID)
		}
		return nil, fmt.Errorf("creating slot: %w", err)
	}
	if err := s.floors.IncrementTotalSlots(ctx, in.FloorID); err != nil {
		return nil, fmt.Errorf("updating floor slot count: %w", err)
	}

	logger.L().Info("parking slot created",
		zap.Int64("slot_id", slot.ID),
		zap.Int64("floor_id", slot.FloorID),
		zap.String("vehicle_type", string(slot.VehicleType)),
	)
	return slot, nil
}

func (s *SlotService) GetByID(ctx context.Context, id int64) (*db.Slot, error) {
	slot, err := s.slots.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.KindNotFound, "parking slot %d not found", id)
		}
		return nil, fmt.Errorf("querying slot %d: %w", id, err)
	}
	return slot, nil
}

func (s *SlotService) List(ctx context.Context, vehicleType *db.VehicleType) ([]db.Slot, error) {
	return s.slots.List(ctx, vehicleType)
}

func (s *SlotService) ListByFloor(ctx context.Context, floorID int64) ([]db.Slot, error) {
	if _, err := s.floors.GetByID(ctx, floorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.KindNotFound, "floor %d not found", floorID)
		}
		return nil, fmt.Errorf("resolving floor %d: %w", floorID, err)
	}
	return s.slots.ListByFloor(ctx, floorID)
}

// UpdateStatus changes the informational status flag. Bookings never
// consult it; conflicts stay interval-based.
func (s *SlotService) UpdateStatus(ctx context.Context, id int64, status db.SlotStatus) (*db.Slot, error) {
	slot, err := s.slots.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.KindNotFound, "parking slot %d not found", id)
		}
		return nil, fmt.Errorf("updating slot %d status: %w", id, err)
	}
	return slot, nil
}
