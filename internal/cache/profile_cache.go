package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/internal/models"
	"github.com/redis/go-redis/v9"
)

const profileKeyPrefix = "profile:"

// DefaultProfileTTL bounds how long a cached profile may be served
const DefaultProfileTTL = 10 * time.Minute

// ProfileCache keeps read-through copies of user profiles in Redis
type ProfileCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewProfileCache(client redis.Cmdable, ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = DefaultProfileTTL
	}
	return &ProfileCache{client: client, ttl: ttl}
}

func profileKey(id uuid.UUID) string {
	return profileKeyPrefix + id.String()
}

// setIfNewer stores a profile unless the cached copy carries a newer version, so a
// slow read cannot overwrite the row written by a later update.
// KEYS[1] profile key; ARGV[1] version, ARGV[2] encoded profile, ARGV[3] ttl in ms.
var setIfNewer = redis.NewScript(`
local cur = tonumber(redis.call('HGET', KEYS[1], 'v'))
if cur and cur > tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'v', ARGV[1], 'data', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

// Get reports a miss as (nil, false, nil)
func (c *ProfileCache) Get(ctx context.Context, id uuid.UUID) (*models.User, bool, error) {
	val, err := c.client.HGet(ctx, profileKey(id), "data").Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var user models.User
	if err := json.Unmarshal(val, &user); err != nil {
		return nil, false, err
	}
	return &user, true, nil
}

// Set caches user, versioned by its updatedAt. An older version never replaces a newer one.
func (c *ProfileCache) Set(ctx context.Context, user *models.User) error {
	val, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return setIfNewer.Run(ctx, c.client, []string{profileKey(user.ID)},
		user.UpdatedAt.UnixMicro(), val, c.ttl.Milliseconds()).Err()
}

func (c *ProfileCache) Delete(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, profileKey(id)).Err()
}
