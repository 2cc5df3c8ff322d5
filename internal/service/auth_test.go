package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/internal/apperror"
	"github.com/pageza/designhub/backend/internal/database"
	"github.com/pageza/designhub/backend/internal/models"
	"github.com/pageza/designhub/backend/internal/testhelpers"
	"github.com/pageza/designhub/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	return NewAuthService(database.NewUserStore(db), "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &types.RegisterRequest{
		Name:     "  Elena Rodriguez ",
		Email:    " Elena@Example.com ",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "Elena Rodriguez", registered.User.Name)
	assert.Equal(t, "elena@example.com", registered.User.Email)
	assert.NotEqual(t, "correct-horse", registered.User.PasswordHash)

	claims, err := svc.ValidateToken(registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
	assert.Equal(t, registered.User.ID.String(), claims.Subject)

	loggedIn, err := svc.Login(ctx, &types.LoginRequest{Email: "ELENA@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	req := &types.RegisterRequest{Name: "One", Email: "dup@example.com", Password: "password-1"}

	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.True(t, apperror.HasCode(err, apperror.CodeEmailTaken))
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestRegisterInvalidInput(t *testing.T) {
	svc := newAuthService(t)

	cases := []*types.RegisterRequest{
		{Name: " ", Email: "a@example.com", Password: "password-1"},
		{Name: "A", Email: "not-an-email", Password: "password-1"},
		{Name: "A", Email: "a@example.com", Password: "short"},
	}
	for _, req := range cases {
		_, err := svc.Register(context.Background(), req)
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidInput), "%+v", req)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &types.RegisterRequest{Name: "A", Email: "a@example.com", Password: "password-1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "a@example.com", Password: "wrong-password"})
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidCredentials))
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "nobody@example.com", Password: "password-1"})
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidCredentials))
}

func TestValidateTokenInvalid(t *testing.T) {
	svc := NewAuthService(nil, "test-secret", time.Hour)

	claims, err := svc.ValidateToken("invalid.token")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewAuthService(nil, "other-secret", time.Hour)
	token, err := other.GenerateToken(&models.User{ID: uuid.New(), Name: "X"})
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewAuthService(nil, "test-secret", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, err := svc.GenerateToken(&models.User{ID: uuid.New(), Name: "X"})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateTokenRejectsOtherAlgorithms(t *testing.T) {
	svc := NewAuthService(nil, "test-secret", time.Hour)
	id := uuid.New()

	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: id.String()},
		UserID:           id,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
