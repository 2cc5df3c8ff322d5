package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/internal/apperror"
	"github.com/pageza/designhub/backend/internal/database"
	"github.com/pageza/designhub/backend/internal/models"
	"github.com/pageza/designhub/backend/internal/types"
	"gorm.io/gorm"
)

// DownloadURLLifetime is how long a presigned download link stays valid
const DownloadURLLifetime = 15 * time.Minute

// categoryAll disables category or type filtering
const categoryAll = "All"

type ResourceService struct {
	db        *gorm.DB
	presigner Presigner
}

var _ IResourceService = (*ResourceService)(nil)

// NewResourceService creates a ResourceService. presigner may be nil when no bucket is configured.
func NewResourceService(db *gorm.DB, presigner Presigner) *ResourceService {
	return &ResourceService{db: db, presigner: presigner}
}

func (s *ResourceService) ListResources(ctx context.Context, filters *models.ResourceFilters) ([]*models.Resource, error) {
	query := s.db.WithContext(ctx)

	if filters != nil {
		if q := strings.TrimSpace(filters.Query); q != "" {
			pattern := database.ContainsPattern(s.db, q)
			query = query.Where("(LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\')", pattern, pattern)
		}
		if c := strings.TrimSpace(filters.Category); c != "" && c != categoryAll {
			query = query.Where("category = ?", c)
		}
	}

	var resources []*models.Resource
	if err := query.Order("title ASC").Find(&resources).Error; err != nil {
		return nil, apperror.NewInternal(err)
	}
	return resources, nil
}

// Download counts a download and returns a link to the file when one is stored
func (s *ResourceService) Download(ctx context.Context, id uuid.UUID) (*types.DownloadResponse, error) {
	var resource models.Resource
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&resource).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound(apperror.CodeResourceNotFound, "Resource not found")
		}
		return nil, apperror.NewInternal(err)
	}

	resp := &types.DownloadResponse{}
	if resource.FileKey != "" && s.presigner != nil {
		url, err := s.presigner.GeneratePresignedURL(ctx, resource.FileKey, DownloadURLLifetime)
		if err != nil {
			return nil, apperror.NewInternal(err)
		}
		resp.URL = &url
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Resource{}).Where("id = ?", id).
			UpdateColumn("downloads", gorm.Expr("downloads + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.NewNotFound(apperror.CodeResourceNotFound, "Resource not found")
		}
		return tx.Select("downloads").Where("id = ?", id).Take(&resource).Error
	})
	if err != nil {
		return nil, apperror.From(err)
	}

	resp.Downloads = resource.Downloads
	return resp, nil
}
