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

type CreateFloorInput struct {
	FloorNumber int
	FloorName   string
}

// FloorWithSlots pairs a floor with its slots for the detail endpoint.
type FloorWithSlots struct {
	Floor db.Floor
	Slots []db.Slot
}

type FloorService struct {
	floors repository.FloorStore
	slots  repository.SlotStore
}

func NewFloorService(floors repository.FloorStore, slots repository.SlotStore) *FloorService {
	return &FloorService{floors: floors, slots: slots}
}

func (s *FloorService) Create(ctx context.Context, in CreateFloorInput) (*db.Floor, error) {
	if in.FloorNumber <= 0 {
		return nil, apperrors.New(apperrors.KindInvalidArgument, "floor number must be positive")
	}
	if in.FloorName == "" {
		return nil, apperrors.New(apperrors.KindInvalidArgument, "floor name must not be empty")
	}

	floor := &db.Floor{FloorNumber: in.FloorNumber, FloorName: in.FloorName}
	if err := s.floors.Create(ctx, floor); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Newf(apperrors.KindConflict, "floor %d already exists", in.FloorNumber)
		}
		return nil, fmt.Errorf("creating floor: %w", err)
	}

	logger.L().Info("floor created", zap.Int64("floor_id", floor.ID), zap.Int("floor_number", floor.FloorNumber))
	return floor, nil
}

func (s *FloorService) List(ctx context.Context) ([]db.Floor, error) {
	return s.floors.List(ctx)
}

func (s *FloorService) GetByID(ctx context.Context, id int64) (*db.Floor, error) {
	floor, err := s.floors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.KindNotFound, "floor %d not found", id)
		}
		return nil, fmt.Errorf("querying floor %d: %w", id, err)
	}
	return floor, nil
}

func (s *FloorService) GetWithSlots(ctx context.Context, id int64) (*FloorWithSlots, error) {
	floor, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	slots, err := s.slots.ListByFloor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing slots for floor %d: %w", id, err)
	}
	return &FloorWithSlots{Floor: *floor, Slots: slots}, nil
}
