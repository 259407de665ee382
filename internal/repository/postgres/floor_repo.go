package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parkinglot/internal/db"
	"parkinglot/internal/repository"
)

type FloorRepository struct {
	DB *sql.DB
}

func NewFloorRepository(database *sql.DB) *FloorRepository {
	return &FloorRepository{DB: database}
}

func (r *FloorRepository) Create(ctx context.Context, floor *db.Floor) error {
	query := `
		INSERT INTO floors (floor_number, floor_name, total_slots)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query, floor.FloorNumber, floor.FloorName, floor.TotalSlots).
		Scan(&floor.ID, &floor.CreatedAt, &floor.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting floor: %w", translateConstraint(err))
	}
	return nil
}

func (r *FloorRepository) GetByID(ctx context.Context, id int64) (*db.Floor, error) {
	var f db.Floor
	query := `SELECT id, floor_number, floor_name, total_slots, created_at, updated_at FROM floors WHERE id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&f.ID, &f.FloorNumber, &f.FloorName, &f.TotalSlots, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("querying floor %d: %w", id, err)
	}
	return &f, nil
}

func (r *FloorRepository) List(ctx context.Context) ([]db.Floor, error) {
	query := `SELECT id, floor_number, floor_name, total_slots, created_at, updated_at FROM floors ORDER BY floor_number`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying floors: %w", err)
	}
	defer rows.Close()

	var floors []db.Floor
	for rows.Next() {
		var f db.Floor
		if err := rows.Scan(&f.ID, &f.FloorNumber, &f.FloorName, &f.TotalSlots, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning floor: %w", err)
		}
		floors = append(floors, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating floors: %w", err)
	}
	return floors, nil
}

func (r *FloorRepository) IncrementTotalSlots(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE floors SET total_slots = total_slots + 1, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("incrementing total slots for floor %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
