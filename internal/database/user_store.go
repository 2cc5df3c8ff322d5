package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/internal/models"
	"gorm.io/gorm"
)

// ErrEmailTaken is returned when a user is created with an email already on record
var ErrEmailTaken = errors.New("email already registered")

// UserStore persists user records with GORM
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a new UserStore
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByID returns models.ErrUserNotFound when no row has the given id
func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// UpdateByID applies patch (column name to value) to the single row for id and
// returns the row as stored afterwards. The write and the re-read share a transaction.
func (s *UserStore) UpdateByID(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).Where("id = ?", id).Updates(patch)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.ErrUserNotFound
		}
		return tx.Where("id = ?", id).First(&user).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteByID removes the user and everything they own in one transaction. Vacancies
// they posted stay listed without a poster id. Returns models.ErrUserNotFound when
// no row matched.
func (s *UserStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownPosts := tx.Model(&models.Post{}).Select("id").Where("author_id = ?", id)
		steps := []func() error{
			func() error {
				return tx.Where("user_id = ? OR post_id IN (?)", id, ownPosts).Delete(&models.PostLike{}).Error
			},
			func() error { return tx.Where("author_id = ?", id).Delete(&models.Post{}).Error },
			func() error {
				return tx.Where("sender_id = ? OR recipient_id = ?", id, id).Delete(&models.Message{}).Error
			},
			func() error { return tx.Where("user_id = ?", id).Delete(&models.PortfolioItem{}).Error },
			func() error { return tx.Where("user_id = ?", id).Delete(&models.UserSettings{}).Error },
			func() error {
				return tx.Model(&models.Vacancy{}).Where("posted_by_id = ?", id).Update("posted_by_id", nil).Error
			},
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}

		result := tx.Where("id = ?", id).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.ErrUserNotFound
		}
		return nil
	})
}

// Search lists users other than excludeID whose name contains query, ignoring case
func (s *UserStore) Search(ctx context.Context, excludeID uuid.UUID, query string) ([]models.User, error) {
	q := s.db.WithContext(ctx).Where("id <> ?", excludeID)
	if query != "" {
		q = q.Where("LOWER(name) LIKE ? ESCAPE '\\'", ContainsPattern(s.db, query))
	}

	var users []models.User
	if err := q.Order("name ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
