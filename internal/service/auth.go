package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pageza/designhub/backend/internal/apperror"
	"github.com/pageza/designhub/backend/internal/database"
	"github.com/pageza/designhub/backend/internal/models"
	"github.com/pageza/designhub/backend/internal/types"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// MinPasswordLength is the shortest password accepted at registration
const MinPasswordLength = 8

// AuthService registers users and issues session tokens
type AuthService struct {
	store         UserStore
	jwtSecret     []byte
	tokenLifespan time.Duration
	now           func() time.Time
}

var _ IAuthService = (*AuthService)(nil)

func NewAuthService(store UserStore, jwtSecret string, tokenLifespan time.Duration) *AuthService {
	if tokenLifespan <= 0 {
		tokenLifespan = 24 * time.Hour
	}
	return &AuthService{
		store:         store,
		jwtSecret:     []byte(jwtSecret),
		tokenLifespan: tokenLifespan,
		now:           time.Now,
	}
}

// Register creates the user record that backs the profile and returns a session for it
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" {
		return nil, apperror.NewInvalidInput(apperror.CodeInvalidInput, "Name is required", nil)
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperror.NewInvalidInput(apperror.CodeInvalidInput, "A valid email is required", nil)
	}
	if len(req.Password) < MinPasswordLength {
		return nil, apperror.NewInvalidInput(apperror.CodeInvalidInput,
			fmt.Sprintf("Password must be at least %d characters", MinPasswordLength), nil)
	}

	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return nil, apperror.NewConflict(apperror.CodeEmailTaken, "Email already registered")
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return nil, apperror.NewInternal(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrEmailTaken) {
			return nil, apperror.NewConflict(apperror.CodeEmailTaken, "Email already registered")
		}
		return nil, apperror.NewInternal(err)
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return &types.AuthResponse{Token: token, User: user}, nil
}

// Login checks credentials; unknown email and wrong password are indistinguishable
func (s *AuthService) Login(ctx context.Context, req *types.LoginRequest) (*types.AuthResponse, error) {
	invalid := apperror.NewAppError(apperror.ErrUnauthorized, apperror.CodeInvalidCredentials, "Invalid email or password", nil)

	user, err := s.store.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, invalid
		}
		return nil, apperror.NewInternal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, invalid
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return &types.AuthResponse{Token: token, User: user}, nil
}

// GenerateToken signs an HS256 session token whose subject is the user id
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := s.now()
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifespan)),
		},
		UserID: user.ID,
		Name:   user.Name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID.String() != claims.Subject {
		return nil, fmt.Errorf("%w: subject does not match user id", ErrInvalidToken)
	}
	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
