package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/internal/apperror"
	"github.com/pageza/designhub/backend/internal/cache"
	"github.com/pageza/designhub/backend/internal/database"
	"github.com/pageza/designhub/backend/internal/events"
	"github.com/pageza/designhub/backend/internal/models"
	"github.com/pageza/designhub/backend/internal/testhelpers"
	"github.com/pageza/designhub/backend/internal/testhelpers/mocks"
	"github.com/pageza/designhub/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func decodeProfileRequest(t *testing.T, body string) *types.UpdateProfileRequest {
	t.Helper()
	req, err := types.DecodeUpdateProfileRequest(strings.NewReader(body))
	require.NoError(t, err)
	return req
}

func TestGetProfile(t *testing.T) {
	store := new(mocks.MockUserStore)
	svc := NewProfileService(store)
	userID := uuid.New()

	store.On("FindByID", mock.Anything, userID).Return(&models.User{ID: userID, Name: "Ada"}, nil)

	user, err := svc.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
	store.AssertExpectations(t)
}

func TestGetProfileNotFound(t *testing.T) {
	store := new(mocks.MockUserStore)
	svc := NewProfileService(store)
	userID := uuid.New()

	store.On("FindByID", mock.Anything, userID).Return(nil, models.ErrUserNotFound)

	_, err := svc.GetProfile(context.Background(), userID)
	assert.True(t, apperror.HasCode(err, apperror.CodeUserNotFound))
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetProfileStoreFailure(t *testing.T) {
	store := new(mocks.MockUserStore)
	svc := NewProfileService(store)
	userID := uuid.New()

	store.On("FindByID", mock.Anything, userID).Return(nil, errors.New("connection refused"))

	_, err := svc.GetProfile(context.Background(), userID)
	appErr := apperror.From(err)
	assert.Equal(t, apperror.CodeInternal, appErr.Code)
	assert.Equal(t, "Internal server error: connection refused", appErr.Message)
}

func TestGetProfileCacheHitSkipsStore(t *testing.T) {
	store := new(mocks.MockUserStore)
	cache := new(mocks.MockProfileCache)
	svc := NewProfileService(store, WithProfileCache(cache))
	userID := uuid.New()

	cache.On("Get", mock.Anything, userID).Return(&models.User{ID: userID, Name: "Cached"}, true, nil)

	user, err := svc.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Cached", user.Name)
	store.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestGetProfileCacheFailureFallsBackToStore(t *testing.T) {
	store := new(mocks.MockUserStore)
	cache := new(mocks.MockProfileCache)
	svc := NewProfileService(store, WithProfileCache(cache))
	userID := uuid.New()
	user := &models.User{ID: userID, Name: "Stored"}

	cache.On("Get", mock.Anything, userID).Return(nil, false, errors.New("redis down"))
	store.On("FindByID", mock.Anything, userID).Return(user, nil)
	cache.On("Set", mock.Anything, user).Return(errors.New("redis down"))

	got, err := svc.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Stored", got.Name)
	cache.AssertExpectations(t)
}

func TestUpdateProfileValidationNeverTouchesStore(t *testing.T) {
	bodies := map[string]string{
		"scenario A": `{"name": "  "}`,
		"scenario B": `{"website": "not a url"}`,
		"no fields":  `{"unknown": "value"}`,
		"mixed":      `{"bio": "valid", "website": "still not a url"}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			store := new(mocks.MockUserStore)
			publisher := new(mocks.MockEventPublisher)
			svc := NewProfileService(store, WithEventPublisher(publisher))

			_, err := svc.UpdateProfile(context.Background(), uuid.New(), decodeProfileRequest(t, body))
			require.Error(t, err)
			assert.ErrorIs(t, err, apperror.ErrInvalidInput)

			store.AssertNotCalled(t, "UpdateByID", mock.Anything, mock.Anything, mock.Anything)
			publisher.AssertNotCalled(t, "PublishProfileUpdated", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateProfileWritesPatchWithTimestamp(t *testing.T) {
	store := new(mocks.MockUserStore)
	cache := new(mocks.MockProfileCache)
	publisher := new(mocks.MockEventPublisher)
	now := time.Date(2026, 5, 4, 10, 30, 0, 123456789, time.UTC)
	svc := NewProfileService(store,
		WithProfileCache(cache),
		WithEventPublisher(publisher),
		WithClock(func() time.Time { return now }),
	)
	userID := uuid.New()
	stamped := now.Truncate(time.Microsecond)
	updated := &models.User{ID: userID, Name: "Ada", UpdatedAt: stamped}

	store.On("UpdateByID", mock.Anything, userID, map[string]interface{}{
		"website":    nil,
		"bio":        "Hello",
		"updated_at": stamped,
	}).Return(updated, nil)
	cache.On("Set", mock.Anything, updated).Return(nil)
	publisher.On("PublishProfileUpdated", mock.Anything, events.ProfileUpdated{
		ID:        userID,
		Fields:    []string{"website", "bio"},
		UpdatedAt: stamped,
	}).Return(nil)

	got, err := svc.UpdateProfile(context.Background(), userID,
		decodeProfileRequest(t, `{"website": "", "bio": " Hello ", "email": "hijack@example.com"}`))
	require.NoError(t, err)
	assert.Same(t, updated, got)

	store.AssertExpectations(t)
	cache.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestUpdateProfileNotFound(t *testing.T) {
	store := new(mocks.MockUserStore)
	cache := new(mocks.MockProfileCache)
	svc := NewProfileService(store, WithProfileCache(cache))
	userID := uuid.New()

	store.On("UpdateByID", mock.Anything, userID, mock.Anything).Return(nil, models.ErrUserNotFound)

	_, err := svc.UpdateProfile(context.Background(), userID, decodeProfileRequest(t, `{"bio": "Hello"}`))
	assert.True(t, apperror.HasCode(err, apperror.CodeUserNotFound))
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUpdateProfileSideEffectFailuresDoNotFailRequest(t *testing.T) {
	store := new(mocks.MockUserStore)
	cache := new(mocks.MockProfileCache)
	publisher := new(mocks.MockEventPublisher)
	svc := NewProfileService(store, WithProfileCache(cache), WithEventPublisher(publisher))
	userID := uuid.New()
	updated := &models.User{ID: userID, Name: "Grace"}

	store.On("UpdateByID", mock.Anything, userID, mock.Anything).Return(updated, nil)
	cache.On("Set", mock.Anything, updated).Return(errors.New("redis down"))
	cache.On("Delete", mock.Anything, userID).Return(errors.New("redis down"))
	publisher.On("PublishProfileUpdated", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	got, err := svc.UpdateProfile(context.Background(), userID, decodeProfileRequest(t, `{"name": "Grace"}`))
	require.NoError(t, err)
	assert.Equal(t, "Grace", got.Name)
}

func TestUpdateProfileFallsBackToCacheDelete(t *testing.T) {
	store := new(mocks.MockUserStore)
	cache := new(mocks.MockProfileCache)
	svc := NewProfileService(store, WithProfileCache(cache))
	userID := uuid.New()
	updated := &models.User{ID: userID, Name: "Grace"}

	store.On("UpdateByID", mock.Anything, userID, mock.Anything).Return(updated, nil)
	cache.On("Set", mock.Anything, updated).Return(errors.New("OOM command not allowed"))
	cache.On("Delete", mock.Anything, userID).Return(nil)

	_, err := svc.UpdateProfile(context.Background(), userID, decodeProfileRequest(t, `{"name": "Grace"}`))
	require.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestUpdateProfileDuringRedisOutageIsNotServedStale(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	mr, client := testhelpers.SetupTestRedis(t)
	svc := NewProfileService(database.NewUserStore(db), WithProfileCache(cache.NewProfileCache(client, time.Minute)))
	user := testhelpers.CreateTestUser(t, db, "Old Name")
	ctx := context.Background()

	got, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "Old Name", got.Name)

	mr.SetError("transient")
	updated, err := svc.UpdateProfile(ctx, user.ID, decodeProfileRequest(t, `{"name": "New Name"}`))
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	mr.SetError("")

	got, err = svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)

	// The fresh read repopulated the cache and reads are served from it again
	got, err = svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	_, isStale := svc.stale.Load(user.ID)
	assert.False(t, isStale)
}

func TestUpdateProfileWritesThroughCache(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	_, client := testhelpers.SetupTestRedis(t)
	profileCache := cache.NewProfileCache(client, time.Minute)
	svc := NewProfileService(database.NewUserStore(db), WithProfileCache(profileCache))
	user := testhelpers.CreateTestUser(t, db, "Old Name")
	ctx := context.Background()

	_, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, user.ID, decodeProfileRequest(t, `{"name": "New Name"}`))
	require.NoError(t, err)

	// A read that fetched the row before the update lands late
	stale := *user
	require.NoError(t, profileCache.Set(ctx, &stale))

	cached, hit, err := profileCache.Get(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, "New Name", cached.Name)
}

func TestUpdateProfileStoreFailure(t *testing.T) {
	store := new(mocks.MockUserStore)
	svc := NewProfileService(store)
	userID := uuid.New()

	store.On("UpdateByID", mock.Anything, userID, mock.Anything).Return(nil, errors.New("deadlock detected"))

	_, err := svc.UpdateProfile(context.Background(), userID, decodeProfileRequest(t, `{"role": "Art Director"}`))
	assert.True(t, apperror.HasCode(err, apperror.CodeInternal))
	assert.Contains(t, apperror.From(err).Message, "deadlock detected")
}

func newStoreBackedProfileService(t *testing.T, now func() time.Time) (*ProfileService, *models.User) {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	user := testhelpers.CreateTestUser(t, db, "Original Name")
	return NewProfileService(database.NewUserStore(db), WithClock(now)), user
}

func TestUpdateProfileRoundTrip(t *testing.T) {
	svc, user := newStoreBackedProfileService(t, time.Now)
	ctx := context.Background()

	updated, err := svc.UpdateProfile(ctx, user.ID, decodeProfileRequest(t, `{
		"name": " Sarah Chen ",
		"role": "Product Designer",
		"location": "San Francisco, CA",
		"website": "https://sarah.design",
		"bio": "Designing calm interfaces."
	}`))
	require.NoError(t, err)

	fetched, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sarah Chen", fetched.Name)
	assert.Equal(t, "Product Designer", *fetched.Role)
	assert.Equal(t, "San Francisco, CA", *fetched.Location)
	assert.Equal(t, "https://sarah.design", *fetched.Website)
	assert.Equal(t, "Designing calm interfaces.", *fetched.Bio)
	assert.Equal(t, user.Email, fetched.Email)
	assert.True(t, updated.UpdatedAt.Equal(fetched.UpdatedAt))
}

func TestUpdateProfileClearsWebsite(t *testing.T) {
	svc, user := newStoreBackedProfileService(t, time.Now)
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, user.ID, decodeProfileRequest(t, `{"website": "https://before.example"}`))
	require.NoError(t, err)

	// Scenario C
	updated, err := svc.UpdateProfile(ctx, user.ID, decodeProfileRequest(t, `{"website": ""}`))
	require.NoError(t, err)
	assert.Nil(t, updated.Website)
	assert.Equal(t, "Original Name", updated.Name)
}

func TestUpdateProfileIdempotentAndMonotonic(t *testing.T) {
	clock := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	svc, user := newStoreBackedProfileService(t, func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	})
	ctx := context.Background()
	body := `{"name": "Marcus Johnson", "bio": "Brand strategist"}`

	first, err := svc.UpdateProfile(ctx, user.ID, decodeProfileRequest(t, body))
	require.NoError(t, err)
	second, err := svc.UpdateProfile(ctx, user.ID, decodeProfileRequest(t, body))
	require.NoError(t, err)

	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, *first.Bio, *second.Bio)
	assert.Equal(t, first.Role, second.Role)
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc, _ := newStoreBackedProfileService(t, time.Now)

	_, err := svc.UpdateProfile(context.Background(), uuid.New(), decodeProfileRequest(t, `{"bio": "Hello"}`))
	assert.True(t, apperror.HasCode(err, apperror.CodeUserNotFound))
}

func TestUpdateProfileRejectedLeavesRowUntouched(t *testing.T) {
	svc, user := newStoreBackedProfileService(t, time.Now)
	ctx := context.Background()

	before, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, user.ID, decodeProfileRequest(t, `{"bio": "new bio", "website": "bad url"}`))
	require.Error(t, err)

	after, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, after.Bio)
	assert.True(t, before.UpdatedAt.Equal(after.UpdatedAt))
}
