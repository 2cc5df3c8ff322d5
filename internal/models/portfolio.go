package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxPortfolioItems caps how many pieces one designer can showcase
const MaxPortfolioItems = 24

// PortfolioItem is one showcased piece of work on a designer's profile
type PortfolioItem struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"-"`
	Title     string    `gorm:"not null" json:"title"`
	Category  string    `json:"category"`
	Image     string    `gorm:"size:2048" json:"image"`
	Position  int       `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

func (PortfolioItem) TableName() string {
	return "portfolio_items"
}

func (p *PortfolioItem) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
