package testhelpers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/internal/models"
	"github.com/pageza/designhub/backend/internal/types"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestJWTSecret signs tokens issued by CreateTestUserAndToken
const TestJWTSecret = "test-jwt-secret"

// TestPassword is the plain-text password of users made by CreateTestUser
const TestPassword = "testpassword123"

// CreateTestUser inserts a user with a unique email and the given display name
func CreateTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	id := uuid.New()
	user := &models.User{
		ID:           id,
		Name:         name,
		Email:        fmt.Sprintf("user+%s@example.com", id.String()),
		PasswordHash: string(hashedPassword),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestUserAndToken inserts a user and signs a token for it with TestJWTSecret
func CreateTestUserAndToken(t *testing.T, db *gorm.DB, name string) (*models.User, string) {
	t.Helper()

	user := CreateTestUser(t, db, name)
	return user, SignTestToken(t, user.ID, user.Name)
}

// SignTestToken signs a session token for userID with TestJWTSecret
func SignTestToken(t *testing.T, userID uuid.UUID, name string) string {
	t.Helper()

	now := time.Now()
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserID: userID,
		Name:   name,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(TestJWTSecret))
	require.NoError(t, err)
	return token
}

// SetupTestRedis starts an in-process Redis and returns a client connected to it
func SetupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})

	require.NoError(t, client.Ping(context.Background()).Err())
	return mr, client
}
