package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/internal/apperror"
	"github.com/pageza/designhub/backend/internal/models"
	"github.com/pageza/designhub/backend/internal/types"
	"gorm.io/gorm"
)

// FeedPageSize caps how many posts a feed listing returns
const FeedPageSize = 100

type FeedService struct {
	db    *gorm.DB
	users UserStore
}

var _ IFeedService = (*FeedService)(nil)

func NewFeedService(db *gorm.DB, users UserStore) *FeedService {
	return &FeedService{db: db, users: users}
}

// ListPosts returns the newest posts first, marking the ones viewerID has liked
func (s *FeedService) ListPosts(ctx context.Context, viewerID uuid.UUID) ([]types.PostResponse, error) {
	var posts []models.Post
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(FeedPageSize).
		Find(&posts).Error; err != nil {
		return nil, apperror.NewInternal(err)
	}

	liked := make(map[uuid.UUID]bool)
	if len(posts) > 0 {
		ids := make([]uuid.UUID, len(posts))
		for i := range posts {
			ids[i] = posts[i].ID
		}

		var likedIDs []uuid.UUID
		if err := s.db.WithContext(ctx).Model(&models.PostLike{}).
			Where("user_id = ? AND post_id IN ?", viewerID, ids).
			Pluck("post_id", &likedIDs).Error; err != nil {
			return nil, apperror.NewInternal(err)
		}
		for _, id := range likedIDs {
			liked[id] = true
		}
	}

	result := make([]types.PostResponse, len(posts))
	for i := range posts {
		result[i] = types.PostResponse{Post: posts[i], IsLiked: liked[posts[i].ID]}
	}
	return result, nil
}

// CreatePost publishes a post under the author's current name and role
func (s *FeedService) CreatePost(ctx context.Context, authorID uuid.UUID, req *types.CreatePostRequest) (*types.PostResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperror.NewInvalidInput(apperror.CodeInvalidContent, "Post content cannot be empty", nil)
	}

	var image *string
	if req.Image != nil {
		if trimmed := strings.TrimSpace(*req.Image); trimmed != "" {
			if !IsAbsoluteURL(trimmed) {
				return nil, apperror.NewInvalidInput(apperror.CodeInvalidURL, "Invalid image URL format", nil)
			}
			image = &trimmed
		}
	}

	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, apperror.NewNotFound(apperror.CodeUserNotFound, "User not found")
		}
		return nil, apperror.NewInternal(err)
	}

	post := &models.Post{
		AuthorID: author.ID,
		Author:   author.Name,
		Content:  content,
		Image:    image,
	}
	if author.Role != nil {
		post.Role = *author.Role
	}

	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, apperror.NewInternal(err)
	}
	return &types.PostResponse{Post: *post}, nil
}

// ToggleLike likes the post for userID, or removes the like if one exists
func (s *FeedService) ToggleLike(ctx context.Context, userID, postID uuid.UUID) (*types.LikeResponse, error) {
	var resp types.LikeResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Where("id = ?", postID).First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NewNotFound(apperror.CodePostNotFound, "Post not found")
			}
			return err
		}

		result := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.PostLike{})
		if result.Error != nil {
			return result.Error
		}

		delta := -1
		if result.RowsAffected == 0 {
			if err := tx.Create(&models.PostLike{PostID: postID, UserID: userID}).Error; err != nil {
				return err
			}
			delta = 1
			resp.IsLiked = true
		}

		if err := tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("likes", gorm.Expr("likes + ?", delta)).Error; err != nil {
			return err
		}
		if err := tx.Select("likes").Where("id = ?", postID).Take(&post).Error; err != nil {
			return err
		}
		resp.Likes = post.Likes
		return nil
	})
	if err != nil {
		return nil, apperror.From(err)
	}
	return &resp, nil
}
