package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resource is a downloadable asset in the resource library
type Resource struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Category    string    `gorm:"not null;index" json:"category"`
	Author      string    `json:"author"`
	Downloads   int       `gorm:"not null;default:0" json:"downloads"`
	Image       string    `gorm:"size:2048" json:"image"`
	Description string    `gorm:"type:text" json:"description"`
	FileKey     string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Resource) TableName() string {
	return "resources"
}

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ResourceFilters narrows a resource listing
type ResourceFilters struct {
	Query    string
	Category string
}
