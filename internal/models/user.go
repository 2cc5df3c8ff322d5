package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrUserNotFound is returned by stores when no user row matches
var ErrUserNotFound = errors.New("user not found")

// User is the single relational record behind a designer's account and profile.
// Optional profile fields are pointers so that a cleared field is stored as NULL.
type User struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         *string   `gorm:"size:120" json:"role"`
	Location     *string   `gorm:"size:120" json:"location"`
	Website      *string   `gorm:"size:2048" json:"website"`
	Bio          *string   `gorm:"type:text" json:"bio"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName pins the table name shared with the SQL migrations
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns an ID when the caller did not
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
