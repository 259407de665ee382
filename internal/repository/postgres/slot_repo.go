package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parkinglot/internal/db"
	"parkinglot/internal/repository"
)

type SlotRepository struct {
	DB *sql.DB
}

func NewSlotRepository(database *sql.DB) *SlotRepository {
	return &SlotRepository{DB: database}
}

const slotColumns = `id, floor_id, slot_number, vehicle_type, status, created_at, updated_at`

func scanSlot(row interface{ Scan(...any) error }) (*db.Slot, error) {
	var s db.Slot
	err := row.Scan(&s.ID, &s.FloorID, &s.SlotNumber, &s.VehicleType, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SlotRepository) Create(ctx context.Context, slot *db.Slot) error {
	query := `
		INSERT INTO parking_slots (floor_id, slot_number, vehicle_type, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query, slot.FloorID, slot.SlotNumber, slot.VehicleType, slot.Status).
		Scan(&slot.ID, &slot.CreatedAt, &slot.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting slot: %w", translateConstraint(err))
	}
	return nil
}

func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*db.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM parking_slots WHERE id = $1`
	slot, err := scanSlot(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("querying slot %d: %w", id, err)
	}
	return slot, nil
}

func (r *SlotRepository) List(ctx context.Context, vehicleType *db.VehicleType) ([]db.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM parking_slots ORDER BY id`
	args := []any{}
	if vehicleType != nil {
		query = `SELECT ` + slotColumns + ` FROM parking_slots WHERE vehicle_type = $1 ORDER BY id`
		args = append(args, *vehicleType)
	}
	return r.listSlots(ctx, query, args...)
}

func (r *SlotRepository) ListByFloor(ctx context.Context, floorID int64) ([]db.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM parking_slots WHERE floor_id = $1 ORDER BY slot_number`
	return r.listSlots(ctx, query, floorID)
}

func (r *SlotRepository) listSlots(ctx context.Context, query string, args ...any) ([]db.Slot, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying slots: %w", err)
	}
	defer rows.Close()

	var slots []db.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning slot: %w", err)
		}
		slots = append(slots, *slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating slots: %w", err)
	}
	return slots, nil
}

func (r *SlotRepository) UpdateStatus(ctx context.Context, id int64, status db.SlotStatus) (*db.Slot, error) {
	query := `
		UPDATE parking_slots SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + slotColumns
	slot, err := scanSlot(r.DB.QueryRowContext(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("updating slot %d status: %w", id, err)
	}
	return slot, nil
}
