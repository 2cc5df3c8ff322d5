package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/internal/apperror"
	"github.com/pageza/designhub/backend/internal/events"
	"github.com/pageza/designhub/backend/internal/logger"
	"github.com/pageza/designhub/backend/internal/models"
	"github.com/pageza/designhub/backend/internal/types"
	"go.uber.org/zap"
)

// ProfileService handles reads and partial updates of the caller's profile
type ProfileService struct {
	store     UserStore
	cache     ProfileCache
	publisher EventPublisher
	log       logger.Logger
	now       func() time.Time

	// users whose cached profile could not be refreshed or dropped after an update;
	// reads bypass the cache for them until a fresh copy is stored
	stale sync.Map
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// ProfileOption configures optional collaborators of a ProfileService
type ProfileOption func(*ProfileService)

func WithProfileCache(c ProfileCache) ProfileOption {
	return func(s *ProfileService) { s.cache = c }
}

func WithEventPublisher(p EventPublisher) ProfileOption {
	return func(s *ProfileService) { s.publisher = p }
}

func WithLogger(l logger.Logger) ProfileOption {
	return func(s *ProfileService) { s.log = l }
}

// WithClock replaces time.Now as the source of updatedAt
func WithClock(now func() time.Time) ProfileOption {
	return func(s *ProfileService) { s.now = now }
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(store UserStore, opts ...ProfileOption) *ProfileService {
	s := &ProfileService{
		store: store,
		log:   logger.NewNop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetProfile returns the full record for userID
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	_, isStale := s.stale.Load(userID)
	if s.cache != nil && !isStale {
		cached, hit, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.log.Warn("Profile cache read failed", zap.String("user_id", userID.String()), zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, apperror.NewNotFound(apperror.CodeUserNotFound, "User not found")
		}
		return nil, apperror.NewInternal(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, user); err != nil {
			s.log.Warn("Profile cache write failed", zap.String("user_id", userID.String()), zap.Error(err))
		} else if isStale {
			s.stale.Delete(userID)
		}
	}
	return user, nil
}

// UpdateProfile validates every supplied field before writing anything, then applies
// them together with a fresh updatedAt in a single row update.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error) {
	patch, fields, err := BuildProfilePatch(req)
	if err != nil {
		return nil, err
	}

	// Postgres keeps microseconds
	updatedAt := s.now().UTC().Truncate(time.Microsecond)
	patch["updated_at"] = updatedAt

	user, err := s.store.UpdateByID(ctx, userID, patch)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, apperror.NewNotFound(apperror.CodeUserNotFound, "User not found")
		}
		return nil, apperror.NewInternal(err)
	}

	s.refreshCache(ctx, user)

	if s.publisher != nil {
		event := events.ProfileUpdated{ID: userID, Fields: fields, UpdatedAt: user.UpdatedAt}
		if err := s.publisher.PublishProfileUpdated(ctx, event); err != nil {
			s.log.Error("Failed to publish profile update", err, zap.String("user_id", userID.String()))
		}
	}

	return user, nil
}

// DeleteAccount removes the user and everything they own, then drops the cached profile
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.DeleteByID(ctx, userID); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return apperror.NewNotFound(apperror.CodeUserNotFound, "User not found")
		}
		return apperror.NewInternal(err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, userID); err != nil {
			s.stale.Store(userID, struct{}{})
			s.log.Warn("Failed to drop cached profile of deleted account",
				zap.String("user_id", userID.String()), zap.Error(err))
		}
	}
	s.log.Info("Account deleted", zap.String("user_id", userID.String()))
	return nil
}

// refreshCache writes the updated row through to the cache, falling back to dropping
// the entry. When both fail the user is marked stale so reads go to the store.
func (s *ProfileService) refreshCache(ctx context.Context, user *models.User) {
	if s.cache == nil {
		return
	}

	setErr := s.cache.Set(ctx, user)
	if setErr == nil {
		s.stale.Delete(user.ID)
		return
	}

	if err := s.cache.Delete(ctx, user.ID); err != nil {
		s.stale.Store(user.ID, struct{}{})
		s.log.Warn("Profile cache refresh failed, bypassing cache for user",
			zap.String("user_id", user.ID.String()), zap.NamedError("set_error", setErr), zap.Error(err))
		return
	}
	s.stale.Delete(user.ID)
}
