package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parkinglot/internal/db"
	"parkinglot/internal/repository"
)

type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(database *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: database}
}

const reservationColumns = `id, code, slot_id, vehicle_number, vehicle_type, start_time, end_time,
	duration_hours, total_cost, status, contact_email, contact_phone, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }) (*db.Reservation, error) {
	var res db.Reservation
	var contactEmail, contactPhone sql.NullString
	err := row.Scan(
		&res.ID, &res.Code, &res.SlotID, &res.VehicleNumber, &res.VehicleType,
		&res.StartTime, &res.EndTime, &res.DurationHours, &res.TotalCost,
		&res.Status, &contactEmail, &contactPhone, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	res.ContactEmail = contactEmail.String
	res.ContactPhone = contactPhone.String
	res.StartTime = res.StartTime.UTC()
	res.EndTime = res.EndTime.UTC()
	return &res, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *ReservationRepository) Insert(ctx context.Context, res *db.Reservation) error {
	query := `
		INSERT INTO reservations
		(code, slot_id, vehicle_number, vehicle_type, start_time, end_time,
		 duration_hours, total_cost, status, contact_email, contact_phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query,
		res.Code, res.SlotID, res.VehicleNumber, res.VehicleType,
		res.StartTime, res.EndTime, res.DurationHours, res.TotalCost,
		res.Status, nullString(res.ContactEmail), nullString(res.ContactPhone),
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting reservation: %w", translateConstraint(err))
	}
	return nil
}

func (r *ReservationRepository) GetByCode(ctx context.Context, code string) (*db.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE code = $1`
	res, err := scanReservation(r.DB.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("querying reservation %s: %w", code, err)
	}
	return res, nil
}

func (r *ReservationRepository) List(ctx context.Context, status *db.ReservationStatus) ([]db.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations ORDER BY start_time, id`
	args := []any{}
	if status != nil {
		query = `SELECT ` + reservationColumns + ` FROM reservations WHERE status = $1 ORDER BY start_time, id`
		args = append(args, *status)
	}
	return r.listReservations(ctx, query, args...)
}

func (r *ReservationRepository) ListBySlot(ctx context.Context, slotID int64) ([]db.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE slot_id = $1 ORDER BY start_time, id`
	return r.listReservations(ctx, query, slotID)
}

func (r *ReservationRepository) ListActiveBySlot(ctx context.Context, slotID int64) ([]db.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
		WHERE slot_id = $1 AND status = $2 ORDER BY start_time, id`
	return r.listReservations(ctx, query, slotID, db.ReservationActive)
}

func (r *ReservationRepository) listReservations(ctx context.Context, query string, args ...any) ([]db.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reservations: %w", err)
	}
	defer rows.Close()

	var reservations []db.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning reservation: %w", err)
		}
		reservations = append(reservations, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reservations: %w", err)
	}
	return reservations, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, code string, expected, next db.ReservationStatus) (*db.Reservation, error) {
	query := `
		UPDATE reservations SET status = $3, updated_at = NOW()
		WHERE code = $1 AND status = $2
		RETURNING ` + reservationColumns
	res, err := scanReservation(r.DB.QueryRowContext(ctx, query, code, expected, next))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("updating reservation %s status: %w", code, err)
	}
	return res, nil
}
