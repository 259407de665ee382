package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"parkinglot/internal/db"
)

// JobRepository backs the periodic slot status sync. It only touches the
// informational status flag; OUT_OF_SERVICE slots are left alone.
type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

func (r *JobRepository) MarkSlotsOccupied(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE parking_slots ps SET status = $1, updated_at = NOW()
		WHERE ps.status = $2
		  AND EXISTS (
			SELECT 1 FROM reservations res
			WHERE res.slot_id = ps.id
			  AND res.status = $3
			  AND res.start_time <= $4 AND res.end_time > $4
		  )`
	result, err := r.DB.ExecContext(ctx, query, db.SlotOccupied, db.SlotAvailable, db.ReservationActive, now)
	if err != nil {
		return 0, fmt.Errorf("marking slots occupied: %w", err)
	}
	return result.RowsAffected()
}

func (r *JobRepository) MarkSlotsVacated(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE parking_slots ps SET status = $1, updated_at = NOW()
		WHERE ps.status = $2
		  AND NOT EXISTS (
			SELECT 1 FROM reservations res
			WHERE res.slot_id = ps.id
			  AND res.status = $3
			  AND res.start_time <= $4 AND res.end_time > $4
		  )`
	result, err := r.DB.ExecContext(ctx, query, db.SlotAvailable, db.SlotOccupied, db.ReservationActive, now)
	if err != nil {
		return 0, fmt.Errorf("marking slots vacated: %w", err)
	}
	return result.RowsAffected()
}
