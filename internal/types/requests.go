package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/internal/models"
)

// RegisterRequest represents the request body for account registration
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// CreatePostRequest represents the request body for a new feed post
type CreatePostRequest struct {
	Content string  `json:"content"`
	Image   *string `json:"image"`
}

// PostResponse is a feed post as seen by the caller
type PostResponse struct {
	models.Post
	IsLiked bool `json:"isLiked"`
}

// LikeResponse is returned when a like is toggled
type LikeResponse struct {
	Likes   int  `json:"likes"`
	IsLiked bool `json:"isLiked"`
}

// SendMessageRequest represents the request body for a chat message
type SendMessageRequest struct {
	Content string `json:"content"`
}

// ChatContact is another user in the chat sidebar
type ChatContact struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Role        *string    `json:"role"`
	LastMessage *string    `json:"lastMessage,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	Unread      int        `json:"unread"`
}

// MessageResponse is a chat message as seen by the caller
type MessageResponse struct {
	models.Message
	IsOwn bool `json:"isOwn"`
}

// DownloadResponse is returned when a resource is downloaded
type DownloadResponse struct {
	Downloads int     `json:"downloads"`
	URL       *string `json:"url"`
}

// CreateVacancyRequest represents the request body for posting a vacancy
type CreateVacancyRequest struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Type        string   `json:"type"`
	Budget      string   `json:"budget"`
	Duration    string   `json:"duration"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
}

// PortfolioItemInput is one piece in a portfolio replacement
type PortfolioItemInput struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

// ReplacePortfolioRequest carries the complete new portfolio, in display order
type ReplacePortfolioRequest struct {
	Items []PortfolioItemInput `json:"items"`
}

// UpdateSettingsRequest changes only the preferences that are present
type UpdateSettingsRequest struct {
	EmailNotifications *bool   `json:"emailNotifications"`
	PostLikes          *bool   `json:"postLikes"`
	PostComments       *bool   `json:"postComments"`
	NewFollowers       *bool   `json:"newFollowers"`
	ChatMessages       *bool   `json:"chatMessages"`
	JobAlerts          *bool   `json:"jobAlerts"`
	WeeklyDigest       *bool   `json:"weeklyDigest"`
	ProfileVisibility  *string `json:"profileVisibility"`
	ShowEmail          *bool   `json:"showEmail"`
	ShowLocation       *bool   `json:"showLocation"`
}
