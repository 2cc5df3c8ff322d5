package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is an entry in the community feed
type Post struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	AuthorID  uuid.UUID `gorm:"type:varchar(36);not null;index" json:"authorId"`
	Author    string    `gorm:"not null" json:"author"`
	Role      string    `json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Image     *string   `gorm:"size:2048" json:"image,omitempty"`
	Likes     int       `gorm:"not null;default:0" json:"likes"`
	Comments  int       `gorm:"not null;default:0" json:"comments"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PostLike records that a user liked a post; at most one row per pair
type PostLike struct {
	PostID    uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time
}

func (PostLike) TableName() string {
	return "post_likes"
}
