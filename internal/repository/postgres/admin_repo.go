package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parkinglot/internal/db"
	"parkinglot/internal/repository"
)

type AdminRepository struct {
	DB *sql.DB
}

func NewAdminRepository(database *sql.DB) *AdminRepository {
	return &AdminRepository{DB: database}
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*db.Admin, error) {
	var admin db.Admin
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, email, password_hash FROM admins WHERE email = $1`, email).
		Scan(&admin.ID, &admin.Email, &admin.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("querying admin: %w", err)
	}
	return &admin, nil
}

func (r *AdminRepository) Create(ctx context.Context, email, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO admins (email, password_hash) VALUES ($1, $2)`, email, passwordHash)
	if err != nil {
		return fmt.Errorf("inserting admin: %w", translateConstraint(err))
	}
	return nil
}
