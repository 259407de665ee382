package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "parkinglot/internal/errors"
	"parkinglot/internal/repository/memory"
)

func TestAdminLogin(t *testing.T) {
	store := memory.NewStore()
	svc := NewAdminAuthService(store.Admins(), "test-secret")
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "admin@example.com", "hunter22"))

	token, err := svc.Login(ctx, "admin@example.com", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "admin@example.com", claims["email"])

	_, err = svc.Login(ctx, "admin@example.com", "wrong")
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))

	_, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
}

func TestAdminRegisterValidation(t *testing.T) {
	store := memory.NewStore()
	svc := NewAdminAuthService(store.Admins(), "test-secret")
	ctx := context.Background()

	assert.True(t, apperrors.IsKind(svc.Register(ctx, "", "pw"), apperrors.KindInvalidArgument))
	assert.True(t, apperrors.IsKind(svc.Register(ctx, "a@b.c", ""), apperrors.KindInvalidArgument))

	require.NoError(t, svc.Register(ctx, "a@b.c", "pw"))
	assert.True(t, apperrors.IsKind(svc.Register(ctx, "a@b.c", "pw"), apperrors.KindConflict))
}
