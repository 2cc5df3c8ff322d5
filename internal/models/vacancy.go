package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vacancy types accepted by the job board
var VacancyTypes = []string{"Full-time", "Part-time", "Contract", "Freelance"}

// Vacancy is a job or collaboration posting
type Vacancy struct {
	ID          uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Company     string     `gorm:"not null" json:"company"`
	Location    string     `json:"location"`
	Type        string     `gorm:"not null;index" json:"type"`
	Budget      string     `json:"budget"`
	Duration    string     `json:"duration"`
	PostedBy    string     `json:"postedBy"`
	PostedByID  *uuid.UUID `gorm:"type:varchar(36)" json:"postedById,omitempty"`
	Description string     `gorm:"type:text" json:"description"`
	Skills      []string   `gorm:"serializer:json" json:"skills"`
	CreatedAt   time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Vacancy) TableName() string {
	return "vacancies"
}

func (v *Vacancy) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// VacancyFilters narrows a vacancy listing
type VacancyFilters struct {
	Query string
	Type  string
}
