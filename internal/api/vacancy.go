package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/designhub/backend/internal/models"
	"github.com/pageza/designhub/backend/internal/service"
	"github.com/pageza/designhub/backend/internal/types"
)

type VacancyHandler struct {
	vacancyService service.IVacancyService
}

func NewVacancyHandler(vacancyService service.IVacancyService) *VacancyHandler {
	return &VacancyHandler{vacancyService: vacancyService}
}

func (h *VacancyHandler) RegisterRoutes(router *gin.RouterGroup) {
	vacancies := router.Group("/vacancies")
	{
		vacancies.GET("", h.ListVacancies)
		vacancies.POST("", h.CreateVacancy)
	}
}

func (h *VacancyHandler) ListVacancies(c *gin.Context) {
	filters := &models.VacancyFilters{
		Query: c.Query("q"),
		Type:  c.Query("type"),
	}

	vacancies, err := h.vacancyService.ListVacancies(c.Request.Context(), filters)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, vacancies)
}

func (h *VacancyHandler) CreateVacancy(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.CreateVacancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(invalidJSON(err))
		return
	}

	vacancy, err := h.vacancyService.CreateVacancy(c.Request.Context(), userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, vacancy)
}
