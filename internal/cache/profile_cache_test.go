package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/internal/models"
	"github.com/pageza/designhub/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileCacheRoundTrip(t *testing.T) {
	mr, client := testhelpers.SetupTestRedis(t)
	c := NewProfileCache(client, time.Minute)
	ctx := context.Background()

	role := "Product Designer"
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Sarah Chen",
		Email:        "sarah@example.com",
		PasswordHash: "secret-hash",
		Role:         &role,
		UpdatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}

	_, hit, err := c.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, user))
	assert.Equal(t, time.Minute, mr.TTL(profileKey(user.ID)))

	cached, hit, err := c.Get(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, user.Name, cached.Name)
	assert.Equal(t, role, *cached.Role)
	assert.Nil(t, cached.Website)
	assert.True(t, user.UpdatedAt.Equal(cached.UpdatedAt))
	assert.Empty(t, cached.PasswordHash, "password hash must never be cached")

	require.NoError(t, c.Delete(ctx, user.ID))
	_, hit, err = c.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestProfileCacheExpires(t *testing.T) {
	mr, client := testhelpers.SetupTestRedis(t)
	c := NewProfileCache(client, 0)
	ctx := context.Background()

	user := &models.User{ID: uuid.New(), Name: "Marcus"}
	require.NoError(t, c.Set(ctx, user))
	assert.Equal(t, DefaultProfileTTL, mr.TTL(profileKey(user.ID)))

	mr.FastForward(DefaultProfileTTL + time.Second)

	_, hit, err := c.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestProfileCacheUnavailable(t *testing.T) {
	mr, client := testhelpers.SetupTestRedis(t)
	c := NewProfileCache(client, time.Minute)
	mr.Close()

	_, hit, err := c.Get(context.Background(), uuid.New())
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestProfileCacheKeepsNewerVersion(t *testing.T) {
	_, client := testhelpers.SetupTestRedis(t)
	c := NewProfileCache(client, time.Minute)
	ctx := context.Background()

	id := uuid.New()
	older := time.Now().UTC().Truncate(time.Microsecond)
	newer := &models.User{ID: id, Name: "New Name", UpdatedAt: older.Add(time.Second)}
	stale := &models.User{ID: id, Name: "Old Name", UpdatedAt: older}

	require.NoError(t, c.Set(ctx, newer))
	require.NoError(t, c.Set(ctx, stale))

	cached, hit, err := c.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, "New Name", cached.Name)

	// Same version replaces, so a re-read of the same row refreshes the TTL
	require.NoError(t, c.Set(ctx, newer))
	cached, _, err = c.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "New Name", cached.Name)
}
