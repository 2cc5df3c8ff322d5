package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile visibility levels
const (
	VisibilityPublic  = "public"
	VisibilityMembers = "members"
	VisibilityPrivate = "private"
)

var ProfileVisibilities = []string{VisibilityPublic, VisibilityMembers, VisibilityPrivate}

// UserSettings holds a user's notification and privacy preferences.
// Booleans carry no gorm default so that false is written as false.
type UserSettings struct {
	UserID             uuid.UUID `gorm:"type:varchar(36);primarykey" json:"-"`
	EmailNotifications bool      `json:"emailNotifications"`
	PostLikes          bool      `json:"postLikes"`
	PostComments       bool      `json:"postComments"`
	NewFollowers       bool      `json:"newFollowers"`
	ChatMessages       bool      `json:"chatMessages"`
	JobAlerts          bool      `json:"jobAlerts"`
	WeeklyDigest       bool      `json:"weeklyDigest"`
	ProfileVisibility  string    `gorm:"size:16;not null" json:"profileVisibility"`
	ShowEmail          bool      `json:"showEmail"`
	ShowLocation       bool      `json:"showLocation"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}

// DefaultUserSettings is what a user has before saving any preferences
func DefaultUserSettings(userID uuid.UUID) UserSettings {
	return UserSettings{
		UserID:             userID,
		EmailNotifications: true,
		PostLikes:          true,
		PostComments:       true,
		NewFollowers:       true,
		ChatMessages:       true,
		JobAlerts:          false,
		WeeklyDigest:       true,
		ProfileVisibility:  VisibilityPublic,
		ShowEmail:          false,
		ShowLocation:       true,
	}
}
