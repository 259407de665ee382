package service

import (
	"context"
	"fmt"

	"parkinglot/internal/db"
	"parkinglot/internal/interval"
	"parkinglot/internal/repository"
)

// ConflictDetector answers whether a candidate interval collides with any
// ACTIVE reservation on a slot. All cross-reservation reasoning in the
// engine goes through here, scoped to one slot at a time.
type ConflictDetector struct {
	reservations repository.ReservationStore
}

func NewConflictDetector(reservations repository.ReservationStore) *ConflictDetector {
	return &ConflictDetector{reservations: reservations}
}

// HasConflict reports whether any ACTIVE reservation on the slot overlaps
// the candidate interval. excludeCode, when non-empty, skips that
// reservation so a future modification flow cannot conflict with itself.
func (d *ConflictDetector) HasConflict(ctx context.Context, slotID int64, candidate interval.Interval, excludeCode string) (bool, error) {
	active, err := d.reservations.ListActiveBySlot(ctx, slotID)
	if err != nil {
		return false, fmt.Errorf("listing active reservations for slot %d: %w", slotID, err)
	}
	for _, res := range active {
		if excludeCode != "" && res.Code == excludeCode {
			continue
		}
		if candidate.Overlaps(interval.Interval{Start: res.StartTime, End: res.EndTime}) {
			return true, nil
		}
	}
	return false, nil
}

// ListConflicting returns the ACTIVE reservations overlapping the candidate
// interval. Diagnostics path; the booking decision uses HasConflict.
func (d *ConflictDetector) ListConflicting(ctx context.Context, slotID int64, candidate interval.Interval) ([]db.Reservation, error) {
	active, err := d.reservations.ListActiveBySlot(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("listing active reservations for slot %d: %w", slotID, err)
	}
	var conflicting []db.Reservation
	for _, res := range active {
		if candidate.Overlaps(interval.Interval{Start: res.StartTime, End: res.EndTime}) {
			conflicting = append(conflicting, res)
		}
	}
	return conflicting, nil
}
