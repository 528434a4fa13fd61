package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/lotes-api/internal/application/auth"
	"github.com/jhoicas/lotes-api/internal/application/dto"
	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/lotes-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(s *memory.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(s.Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "lotes-test"}).
		WithBcryptCost(bcrypt.MinCost)
}

func TestRegisterYLogin(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	uc := newAuth(s)

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{Name: "Ana", Email: "Ana@Example.com", Password: "supersecreta"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, entity.UserStatusActive, user.Status)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "otraclave1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "supersecreta"})
	require.NoError(t, err)
	claims, err := pkgjwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestLogin_Rechazos(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	uc := newAuth(s)
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "supersecreta"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecreta"), bcrypt.MinCost)
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u9", Email: "off@example.com", PasswordHash: string(hash), Status: entity.UserStatusInactive}))
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "off@example.com", Password: "supersecreta"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
