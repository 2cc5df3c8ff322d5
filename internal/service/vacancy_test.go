package service

import (
	"context"
	"testing"
	"time"

	"github.com/pageza/designhub/backend/internal/apperror"
	"github.com/pageza/designhub/backend/internal/database"
	"github.com/pageza/designhub/backend/internal/models"
	"github.com/pageza/designhub/backend/internal/testhelpers"
	"github.com/pageza/designhub/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListVacancies(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewVacancyService(db, database.NewUserStore(db))
	poster := testhelpers.CreateTestUser(t, db, "Jennifer Lee")
	ctx := context.Background()

	created, err := svc.CreateVacancy(ctx, poster.ID, &types.CreateVacancyRequest{
		Title:       " Senior UI/UX Designer ",
		Company:     "TechCorp Inc.",
		Location:    "Remote",
		Type:        "Full-time",
		Description: "Design delightful products.",
		Skills:      []string{"Figma", " ", "Prototyping "},
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior UI/UX Designer", created.Title)
	assert.Equal(t, "Jennifer Lee", created.PostedBy)
	require.NotNil(t, created.PostedByID)
	assert.Equal(t, poster.ID, *created.PostedByID)
	assert.Equal(t, []string{"Figma", "Prototyping"}, created.Skills)

	older := &models.Vacancy{
		Title: "Brand Identity Designer", Company: "StartupXYZ", Type: "Contract",
		Description: "Create a complete brand identity", CreatedAt: time.Now().Add(-24 * time.Hour),
	}
	require.NoError(t, db.Create(older).Error)

	all, err := svc.ListVacancies(ctx, &models.VacancyFilters{Type: "All"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, created.ID, all[0].ID, "newest first")
	assert.Equal(t, []string{"Figma", "Prototyping"}, all[0].Skills)

	byCompany, err := svc.ListVacancies(ctx, &models.VacancyFilters{Query: "startupxyz"})
	require.NoError(t, err)
	require.Len(t, byCompany, 1)
	assert.Equal(t, older.ID, byCompany[0].ID)

	contracts, err := svc.ListVacancies(ctx, &models.VacancyFilters{Type: "Contract"})
	require.NoError(t, err)
	require.Len(t, contracts, 1)

	freelance, err := svc.ListVacancies(ctx, &models.VacancyFilters{Type: "Freelance"})
	require.NoError(t, err)
	assert.Empty(t, freelance)
}

func TestCreateVacancyValidation(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewVacancyService(db, database.NewUserStore(db))
	poster := testhelpers.CreateTestUser(t, db, "Poster")

	cases := []*types.CreateVacancyRequest{
		{Title: " ", Company: "Acme", Type: "Contract"},
		{Title: "Designer", Company: "", Type: "Contract"},
		{Title: "Designer", Company: "Acme", Type: "Internship"},
		{Title: "Designer", Company: "Acme", Type: "full-time"},
	}
	for _, req := range cases {
		_, err := svc.CreateVacancy(context.Background(), poster.ID, req)
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidInput), "%+v", req)
	}
}
