package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anbar/anbar-api/internal/application/auth"
	"github.com/anbar/anbar-api/internal/application/dto"
	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/infrastructure/memory"
	"github.com/anbar/anbar-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.UserRepo) {
	t.Helper()
	users := memory.NewUserRepository(memory.NewDB())
	return auth.NewAuthUseCase(users, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "anbar-test"}), users
}

func TestAuth_RegistroYLogin(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Ana@Example.com", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.False(t, u.IsAdmin)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "secreto1"})
	require.NoError(t, err)
	claims, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, entity.RoleUser, claims.Role)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ANA@example.com", Password: "otraclave"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestAuth_LoginFallido(t *testing.T) {
	uc, users := newAuth(t)
	ctx := context.Background()
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "bob@x.io", Password: "secreto1"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "bob@x.io", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@x.io", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	stored, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	stored.IsActive = false
	require.NoError(t, users.Update(ctx, stored))
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "bob@x.io", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
