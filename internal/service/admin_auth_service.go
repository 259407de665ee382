package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	apperrors "parkinglot/internal/errors"
	"parkinglot/internal/repository"
)

const tokenTTL = time.Hour

// AdminAuthService issues JWTs for the admin endpoints.
type AdminAuthService struct {
	admins repository.AdminStore
	secret []byte
}

func NewAdminAuthService(admins repository.AdminStore, jwtSecret string) *AdminAuthService {
	return &AdminAuthService{admins: admins, secret: []byte(jwtSecret)}
}

// Login verifies the credentials and returns a signed token valid for one hour.
func (s *AdminAuthService) Login(ctx context.Context, email, password string) (string, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperrors.New(apperrors.KindInvalidArgument, "invalid credentials")
		}
		return "", apperrors.Wrap(err, apperrors.KindInternal, "looking up admin")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.New(apperrors.KindInvalidArgument, "invalid credentials")
	}

	claims := jwt.MapClaims{
		"admin_id": admin.ID,
		"email":    admin.Email,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.KindInternal, "signing token")
	}
	return signed, nil
}

// Register creates a new admin account with a bcrypt-hashed password.
func (s *AdminAuthService) Register(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return apperrors.New(apperrors.KindInvalidArgument, "email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(err, apperrors.KindInternal, "hashing password")
	}

	if err := s.admins.Create(ctx, email, string(hash)); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return apperrors.Newf(apperrors.KindConflict, "admin %s already exists", email)
		}
		return apperrors.Wrap(err, apperrors.KindInternal, "creating admin")
	}
	return nil
}
