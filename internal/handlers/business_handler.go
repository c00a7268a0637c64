package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonkit/salon-scheduler/internal/httperr"
	"github.com/salonkit/salon-scheduler/internal/middleware"
	"github.com/salonkit/salon-scheduler/internal/models"
	"github.com/salonkit/salon-scheduler/internal/timezone"
)

type BusinessHandler struct {
	db *gorm.DB
}

func NewBusinessHandler(db *gorm.DB) *BusinessHandler {
	return &BusinessHandler{db: db}
}

type BusinessUpdateRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	Timezone          *string `json:"timezone"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
}

func (h *BusinessHandler) GetMeBusiness(c *gin.Context) {
	tn := middleware.TenantFrom(c)

	var biz models.Business
	if err := h.db.First(&biz, tn.BusinessID).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Salão não encontrado.")
		return
	}

	c.JSON(http.StatusOK, biz)
}

func (h *BusinessHandler) UpdateMeBusiness(c *gin.Context) {
	tn := middleware.TenantFrom(c)

	var req BusinessUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var biz models.Business
	if err := h.db.First(&biz, tn.BusinessID).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Salão não encontrado.")
		return
	}

	if req.Name != nil {
		biz.Name = *req.Name
	}
	if req.Phone != nil {
		biz.Phone = *req.Phone
	}
	if req.Address != nil {
		biz.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
			return
		}
		biz.Timezone = *req.Timezone
	}
	if req.MinAdvanceMinutes != nil && *req.MinAdvanceMinutes >= 0 {
		biz.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(&biz).Error; err != nil {
		httperr.Internal(c, "failed_to_update_business", "Erro ao atualizar salão.")
		return
	}

	c.JSON(http.StatusOK, biz)
}
