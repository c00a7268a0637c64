package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonkit/salon-scheduler/internal/httperr"
	"github.com/salonkit/salon-scheduler/internal/httpresp"
	"github.com/salonkit/salon-scheduler/internal/middleware"
	"github.com/salonkit/salon-scheduler/internal/models"
)

type StaffHandler struct {
	db *gorm.DB
}

func NewStaffHandler(db *gorm.DB) *StaffHandler {
	return &StaffHandler{db: db}
}

type CreateStaffRequest struct {
	Name        string `json:"name" binding:"required"`
	Specialties string `json:"specialties"`
}

type UpdateStaffRequest struct {
	Name        *string `json:"name"`
	Specialties *string `json:"specialties"`
	Active      *bool   `json:"active"`
}

func (h *StaffHandler) List(c *gin.Context) {
	tn := middleware.TenantFrom(c)

	var staff []models.Staff
	if err := h.db.
		Where("business_id = ?", tn.BusinessID).
		Order("id ASC").
		Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Erro ao listar equipe.")
		return
	}

	httpresp.List(c, staff)
}

func (h *StaffHandler) Create(c *gin.Context) {
	tn := middleware.TenantFrom(c)

	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	st := models.Staff{
		BusinessID:  tn.BusinessID,
		Name:        req.Name,
		Specialties: req.Specialties,
		Active:      true,
	}

	if err := h.db.Create(&st).Error; err != nil {
		httperr.Internal(c, "failed_to_create_staff", "Erro ao criar profissional.")
		return
	}

	httpresp.Created(c, st)
}

func (h *StaffHandler) Update(c *gin.Context) {
	tn := middleware.TenantFrom(c)
	id := c.Param("id")

	var st models.Staff
	if err := h.db.
		Where("id = ? AND business_id = ?", id, tn.BusinessID).
		First(&st).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Profissional não encontrado.")
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.Specialties != nil {
		st.Specialties = *req.Specialties
	}
	if req.Active != nil {
		st.Active = *req.Active
	}

	if err := h.db.Save(&st).Error; err != nil {
		httperr.Internal(c, "failed_to_update_staff", "Erro ao atualizar profissional.")
		return
	}

	c.JSON(http.StatusOK, st)
}
