package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/internal/apperror"
	"github.com/pageza/designhub/backend/internal/models"
	"github.com/pageza/designhub/backend/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsService struct {
	db    *gorm.DB
	users UserStore
}

var _ ISettingsService = (*SettingsService)(nil)

func NewSettingsService(db *gorm.DB, users UserStore) *SettingsService {
	return &SettingsService{db: db, users: users}
}

// GetSettings returns the stored preferences, or the defaults if none were saved yet
func (s *SettingsService) GetSettings(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error) {
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	settings, err := s.load(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return settings, nil
}

// UpdateSettings overlays the supplied preferences on the current ones and stores the result
func (s *SettingsService) UpdateSettings(ctx context.Context, userID uuid.UUID, req *types.UpdateSettingsRequest) (*models.UserSettings, error) {
	if req.ProfileVisibility != nil {
		v := strings.TrimSpace(*req.ProfileVisibility)
		if !slices.Contains(models.ProfileVisibilities, v) {
			return nil, apperror.NewInvalidInput(apperror.CodeInvalidInput,
				"Profile visibility must be one of "+strings.Join(models.ProfileVisibilities, ", "), nil)
		}
		req.ProfileVisibility = &v
	}

	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}

	settings, err := s.load(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	applySettings(settings, req)
	settings.UpdatedAt = time.Now().UTC()

	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(settings).Error; err != nil {
		return nil, apperror.NewInternal(err)
	}
	return settings, nil
}

func (s *SettingsService) load(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := models.DefaultUserSettings(userID)
		return &defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func applySettings(settings *models.UserSettings, req *types.UpdateSettingsRequest) {
	flags := []struct {
		src *bool
		dst *bool
	}{
		{req.EmailNotifications, &settings.EmailNotifications},
		{req.PostLikes, &settings.PostLikes},
		{req.PostComments, &settings.PostComments},
		{req.NewFollowers, &settings.NewFollowers},
		{req.ChatMessages, &settings.ChatMessages},
		{req.JobAlerts, &settings.JobAlerts},
		{req.WeeklyDigest, &settings.WeeklyDigest},
		{req.ShowEmail, &settings.ShowEmail},
		{req.ShowLocation, &settings.ShowLocation},
	}
	for _, f := range flags {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	if req.ProfileVisibility != nil {
		settings.ProfileVisibility = *req.ProfileVisibility
	}
}
