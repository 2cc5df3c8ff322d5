package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/internal/testhelpers/mocks"
	"github.com/pageza/designhub/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSession(t *testing.T) {
	userID := uuid.New()
	validator := new(mocks.MockTokenValidator)
	validator.On("ValidateToken", "good").Return(&types.TokenClaims{UserID: userID}, nil)
	validator.On("ValidateToken", "bad").Return(nil, errors.New("invalid token"))

	cases := []struct {
		name   string
		header string
		cookie string
		ok     bool
	}{
		{"bearer header", "Bearer good", "", true},
		{"lowercase scheme", "bearer good", "", true},
		{"cookie fallback", "", "good", true},
		{"header wins over cookie", "Bearer bad", "good", false},
		{"no credentials", "", "", false},
		{"wrong scheme", "Basic good", "", false},
		{"missing token", "Bearer", "", false},
		{"invalid token", "Bearer bad", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tc.cookie})
			}

			claims, ok := ResolveSession(req, validator)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				require.NotNil(t, claims)
				assert.Equal(t, userID, claims.UserID)
			}
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	validator := new(mocks.MockTokenValidator)
	validator.On("ValidateToken", "good").Return(&types.TokenClaims{UserID: userID}, nil)

	router := gin.New()
	router.GET("/me", AuthMiddleware(validator), func(c *gin.Context) {
		id, ok := UserID(c)
		require.True(t, ok)
		c.String(http.StatusOK, id.String())
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Authentication required","code":"UNAUTHORIZED"}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())
}
