package service

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/internal/apperror"
	"github.com/pageza/designhub/backend/internal/database"
	"github.com/pageza/designhub/backend/internal/models"
	"github.com/pageza/designhub/backend/internal/types"
	"gorm.io/gorm"
)

type VacancyService struct {
	db    *gorm.DB
	users UserStore
}

var _ IVacancyService = (*VacancyService)(nil)

func NewVacancyService(db *gorm.DB, users UserStore) *VacancyService {
	return &VacancyService{db: db, users: users}
}

func (s *VacancyService) ListVacancies(ctx context.Context, filters *models.VacancyFilters) ([]*models.Vacancy, error) {
	query := s.db.WithContext(ctx)

	if filters != nil {
		if q := strings.TrimSpace(filters.Query); q != "" {
			pattern := database.ContainsPattern(s.db, q)
			query = query.Where(
				"(LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\' OR LOWER(company) LIKE ? ESCAPE '\\')",
				pattern, pattern, pattern,
			)
		}
		if t := strings.TrimSpace(filters.Type); t != "" && t != categoryAll {
			query = query.Where("type = ?", t)
		}
	}

	var vacancies []*models.Vacancy
	if err := query.Order("created_at DESC").Find(&vacancies).Error; err != nil {
		return nil, apperror.NewInternal(err)
	}
	return vacancies, nil
}

func (s *VacancyService) CreateVacancy(ctx context.Context, postedBy uuid.UUID, req *types.CreateVacancyRequest) (*models.Vacancy, error) {
	vacancy := &models.Vacancy{
		Title:       strings.TrimSpace(req.Title),
		Company:     strings.TrimSpace(req.Company),
		Location:    strings.TrimSpace(req.Location),
		Type:        strings.TrimSpace(req.Type),
		Budget:      strings.TrimSpace(req.Budget),
		Duration:    strings.TrimSpace(req.Duration),
		Description: strings.TrimSpace(req.Description),
		Skills:      []string{},
	}

	if vacancy.Title == "" || vacancy.Company == "" {
		return nil, apperror.NewInvalidInput(apperror.CodeInvalidInput, "Title and company are required", nil)
	}
	if !slices.Contains(models.VacancyTypes, vacancy.Type) {
		return nil, apperror.NewInvalidInput(apperror.CodeInvalidInput,
			"Type must be one of "+strings.Join(models.VacancyTypes, ", "), nil)
	}

	for _, skill := range req.Skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			vacancy.Skills = append(vacancy.Skills, skill)
		}
	}

	poster, err := s.users.FindByID(ctx, postedBy)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, apperror.NewNotFound(apperror.CodeUserNotFound, "User not found")
		}
		return nil, apperror.NewInternal(err)
	}
	vacancy.PostedBy = poster.Name
	vacancy.PostedByID = &poster.ID

	if err := s.db.WithContext(ctx).Create(vacancy).Error; err != nil {
		return nil, apperror.NewInternal(err)
	}
	return vacancy, nil
}
