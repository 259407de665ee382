package service

import (
	"context"
	"sort"
	"time"

	"parkinglot/internal/db"
	apperrors "parkinglot/internal/errors"
	"parkinglot/internal/interval"
	"parkinglot/internal/repository"
)

// Sort keys accepted by FindAvailable. Ties always break by slot id
// ascending so pages are stable.
const (
	SortByID         = "id"
	SortBySlotNumber = "slot_number"
	SortByFloor      = "floor_id"
)

// AvailabilityPage is one page of free slots plus the pre-pagination total,
// so clients can compute page counts.
type AvailabilityPage struct {
	Slots      []db.Slot
	TotalCount int
	Page       int
	PageSize   int
}

// AvailabilityService answers "which slots are free in [start, end)". It is
// read-only: an answer can go stale by the time the client books, and the
// booking transaction's conflict re-check is what protects correctness.
type AvailabilityService struct {
	slots    repository.SlotStore
	detector *ConflictDetector
}

func NewAvailabilityService(slots repository.SlotStore, detector *ConflictDetector) *AvailabilityService {
	return &AvailabilityService{slots: slots, detector: detector}
}

// FindAvailable returns the slots with no conflicting ACTIVE reservation in
// the window, optionally filtered by vehicle class, sorted and paginated.
// Filtered and unfiltered queries share this one pagination path.
func (s *AvailabilityService) FindAvailable(
	ctx context.Context,
	start, end time.Time,
	vehicleType *db.VehicleType,
	page, pageSize int,
	sortBy string,
) (*AvailabilityPage, error) {
	window, err := interval.New(start, end)
	if err != nil {
		return nil, err
	}
	if page < 0 {
		return nil, apperrors.New(apperrors.KindInvalidArgument, "page must not be negative")
	}
	if pageSize <= 0 {
		return nil, apperrors.New(apperrors.KindInvalidArgument, "page size must be positive")
	}
	less, err := slotLess(sortBy)
	if err != nil {
		return nil, err
	}

	candidates, err := s.slots.List(ctx, vehicleType)
	if err != nil {
		return nil, err
	}

	available := make([]db.Slot, 0, len(candidates))
	for _, slot := range candidates {
		conflict, err := s.detector.HasConflict(ctx, slot.ID, window, "")
		if err != nil {
			return nil, err
		}
		if !conflict {
			available = append(available, slot)
		}
	}

	sort.SliceStable(available, func(i, j int) bool { return less(available[i], available[j]) })

	total := len(available)
	offset := page * pageSize
	if offset > total {
		offset = total
	}
	limit := offset + pageSize
	if limit > total {
		limit = total
	}

	return &AvailabilityPage{
		Slots:      available[offset:limit],
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

func slotLess(sortBy string) (func(a, b db.Slot) bool, error) {
	switch sortBy {
	case "", SortByID:
		return func(a, b db.Slot) bool { return a.ID < b.ID }, nil
	case SortBySlotNumber:
		return func(a, b db.Slot) bool {
			if a.SlotNumber == b.SlotNumber {
				return a.ID < b.ID
			}
			return a.SlotNumber < b.SlotNumber
		}, nil
	case SortByFloor:
		return func(a, b db.Slot) bool {
			if a.FloorID == b.FloorID {
				return a.ID < b.ID
			}
			return a.FloorID < b.FloorID
		}, nil
	default:
		return nil, apperrors.Newf(apperrors.KindInvalidArgument, "unsupported sort key %q", sortBy)
	}
}
