package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/internal/events"
	"github.com/pageza/designhub/backend/internal/models"
	"github.com/pageza/designhub/backend/internal/types"
)

// UserStore reads and writes user records
type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	// UpdateByID returns models.ErrUserNotFound when no row matched
	UpdateByID(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*models.User, error)
	Search(ctx context.Context, excludeID uuid.UUID, query string) ([]models.User, error)
	// DeleteByID removes the user with everything they own
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// ProfileCache is a read-through cache in front of UserStore.FindByID
type ProfileCache interface {
	Get(ctx context.Context, id uuid.UUID) (*models.User, bool, error)
	Set(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// EventPublisher announces profile changes to other services
type EventPublisher interface {
	PublishProfileUpdated(ctx context.Context, event events.ProfileUpdated) error
}

// Presigner issues time-limited download URLs for stored files
type Presigner interface {
	GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}

// IAuthService issues and checks sessions
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthResponse, error)
	Login(ctx context.Context, req *types.LoginRequest) (*types.AuthResponse, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService reads and partially updates the caller's own profile
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

// IPortfolioService lists and replaces the caller's showcased work
type IPortfolioService interface {
	ListPortfolio(ctx context.Context, userID uuid.UUID) ([]*models.PortfolioItem, error)
	ReplacePortfolio(ctx context.Context, userID uuid.UUID, req *types.ReplacePortfolioRequest) ([]*models.PortfolioItem, error)
}

// ISettingsService reads and changes notification and privacy preferences
type ISettingsService interface {
	GetSettings(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, req *types.UpdateSettingsRequest) (*models.UserSettings, error)
}

// IFeedService defines the interface for feed operations
type IFeedService interface {
	ListPosts(ctx context.Context, viewerID uuid.UUID) ([]types.PostResponse, error)
	CreatePost(ctx context.Context, authorID uuid.UUID, req *types.CreatePostRequest) (*types.PostResponse, error)
	ToggleLike(ctx context.Context, userID, postID uuid.UUID) (*types.LikeResponse, error)
}

// IChatService defines the interface for direct messaging
type IChatService interface {
	ListContacts(ctx context.Context, userID uuid.UUID, query string) ([]types.ChatContact, error)
	ListMessages(ctx context.Context, userID, otherID uuid.UUID) ([]types.MessageResponse, error)
	SendMessage(ctx context.Context, senderID, recipientID uuid.UUID, req *types.SendMessageRequest) (*types.MessageResponse, error)
}

// IResourceService defines the interface for the resource library
type IResourceService interface {
	ListResources(ctx context.Context, filters *models.ResourceFilters) ([]*models.Resource, error)
	Download(ctx context.Context, id uuid.UUID) (*types.DownloadResponse, error)
}

// IVacancyService defines the interface for the job board
type IVacancyService interface {
	ListVacancies(ctx context.Context, filters *models.VacancyFilters) ([]*models.Vacancy, error)
	CreateVacancy(ctx context.Context, postedBy uuid.UUID, req *types.CreateVacancyRequest) (*models.Vacancy, error)
}
