package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonkit/salon-scheduler/internal/httperr"
	"github.com/salonkit/salon-scheduler/internal/models"
	"github.com/salonkit/salon-scheduler/internal/tenant"
	"github.com/salonkit/salon-scheduler/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db             *gorm.DB
	availabilityUC *booking.ComputeAvailability
	createUC       *booking.CreateBooking
}

func NewPublicHandler(
	db *gorm.DB,
	availabilityUC *booking.ComputeAvailability,
	createUC *booking.CreateBooking,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		availabilityUC: availabilityUC,
		createUC:       createUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	ServiceIDs []uint `json:"service_ids" binding:"required"`
	Date       string `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime  string `json:"start_time" binding:"required"`
	StaffID    *uint  `json:"staff_id"` // ausente = qualquer um

	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email"`
	Notes     string `json:"notes"`
}

func (h *PublicHandler) findBusiness(c *gin.Context) (*models.Business, bool) {
	slug := c.Param("slug")

	var biz models.Business
	if err := h.db.Where("slug = ?", slug).First(&biz).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Salão não encontrado.")
		return nil, false
	}
	return &biz, true
}

////////////////////////////////////////////////////////
// SERVICES / STAFF
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	biz, ok := h.findBusiness(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Where("business_id = ? AND active = true", biz.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"business": biz,
		"services": services,
	})
}

func (h *PublicHandler) ListStaff(c *gin.Context) {
	biz, ok := h.findBusiness(c)
	if !ok {
		return
	}

	var staff []models.Staff
	if err := h.db.
		Where("business_id = ? AND active = true", biz.ID).
		Order("id ASC").
		Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Erro ao listar equipe.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"staff": staff})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	biz, ok := h.findBusiness(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	var staffID *uint
	if s := c.Query("staff_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_staff_id", "Profissional inválido.")
			return
		}
		v := uint(id)
		staffID = &v
	}

	av := h.availabilityUC.Execute(c.Request.Context(), tenant.New(biz.ID), date, staffID)

	c.JSON(http.StatusOK, gin.H{
		"date":           date,
		"all_slots":      av.AllSlots,
		"occupied_slots": av.OccupiedSlots,
	})
}

////////////////////////////////////////////////////////
// CREATE BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	biz, ok := h.findBusiness(c)
	if !ok {
		return
	}

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), tenant.New(biz.ID), booking.CreateBookingInput{
		ServiceIDs: req.ServiceIDs,
		Date:       req.Date,
		StartTime:  req.StartTime,
		StaffID:    req.StaffID,
		Customer: booking.CustomerInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
			Email:     req.Email,
		},
		Notes: req.Notes,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}
