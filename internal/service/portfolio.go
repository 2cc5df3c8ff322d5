package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/internal/apperror"
	"github.com/pageza/designhub/backend/internal/models"
	"github.com/pageza/designhub/backend/internal/types"
	"gorm.io/gorm"
)

type PortfolioService struct {
	db    *gorm.DB
	users UserStore
}

var _ IPortfolioService = (*PortfolioService)(nil)

func NewPortfolioService(db *gorm.DB, users UserStore) *PortfolioService {
	return &PortfolioService{db: db, users: users}
}

func (s *PortfolioService) ListPortfolio(ctx context.Context, userID uuid.UUID) ([]*models.PortfolioItem, error) {
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}

	items := []*models.PortfolioItem{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("position ASC").Find(&items).Error; err != nil {
		return nil, apperror.NewInternal(err)
	}
	return items, nil
}

// ReplacePortfolio swaps the user's whole portfolio for req.Items. Every item is
// validated before anything is written.
func (s *PortfolioService) ReplacePortfolio(ctx context.Context, userID uuid.UUID, req *types.ReplacePortfolioRequest) ([]*models.PortfolioItem, error) {
	if len(req.Items) > models.MaxPortfolioItems {
		return nil, apperror.NewInvalidInput(apperror.CodeInvalidInput,
			fmt.Sprintf("A portfolio holds at most %d items", models.MaxPortfolioItems), nil)
	}

	items := make([]*models.PortfolioItem, 0, len(req.Items))
	for i, in := range req.Items {
		item := &models.PortfolioItem{
			UserID:   userID,
			Title:    strings.TrimSpace(in.Title),
			Category: strings.TrimSpace(in.Category),
			Image:    strings.TrimSpace(in.Image),
			Position: i,
		}
		if item.Title == "" {
			return nil, apperror.NewInvalidInput(apperror.CodeInvalidInput,
				fmt.Sprintf("Item %d: title is required", i+1), nil)
		}
		if item.Image != "" && !IsAbsoluteURL(item.Image) {
			return nil, apperror.NewInvalidInput(apperror.CodeInvalidURL,
				fmt.Sprintf("Item %d: image must be an absolute URL", i+1), nil)
		}
		items = append(items, item)
	}

	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.PortfolioItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return items, nil
}

// requireUser maps a missing user to USER_NOT_FOUND
func requireUser(ctx context.Context, users UserStore, userID uuid.UUID) error {
	if _, err := users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return apperror.NewNotFound(apperror.CodeUserNotFound, "User not found")
		}
		return apperror.NewInternal(err)
	}
	return nil
}
