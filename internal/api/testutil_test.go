package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/internal/database"
	"github.com/pageza/designhub/backend/internal/logger"
	"github.com/pageza/designhub/backend/internal/middleware"
	"github.com/pageza/designhub/backend/internal/service"
	"github.com/pageza/designhub/backend/internal/testhelpers"
	"github.com/pageza/designhub/backend/internal/types"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SetupTestRouter wires every handler to real services over an in-memory database
func SetupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	users := database.NewUserStore(db)
	log := logger.NewNop()

	router := gin.New()
	router.Use(middleware.ErrorHandler(log))
	RegisterRoutes(router, Dependencies{
		DB:        db,
		Auth:      service.NewAuthService(users, testhelpers.TestJWTSecret, time.Hour),
		Profile:   service.NewProfileService(users, service.WithLogger(log)),
		Feed:      service.NewFeedService(db, users),
		Chat:      service.NewChatService(db, users),
		Resources: service.NewResourceService(db, nil),
		Vacancies: service.NewVacancyService(db, users),
		Portfolio: service.NewPortfolioService(db, users),
		Settings:  service.NewSettingsService(db, users),
		Log:       log,
	})
	return router, db
}

func testClaims(userID uuid.UUID) *types.TokenClaims {
	return &types.TokenClaims{UserID: userID}
}

func performRequest(router http.Handler, method, path, token string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}
