package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonkit/salon-scheduler/internal/middleware"
	"github.com/salonkit/salon-scheduler/internal/models"
)

type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

// ======================================================
// LIST CUSTOMERS (DASHBOARD)
// ======================================================
func (h *CustomerHandler) List(c *gin.Context) {
	tn := middleware.TenantFrom(c)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("business_id = ?", tn.BusinessID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like, like,
		)
	}

	var customers []models.Customer
	if err := q.
		Order("created_at DESC").
		Find(&customers).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_customers",
		})
		return
	}

	c.JSON(http.StatusOK, customers)
}

// ======================================================
// UPDATE NOTES
// ======================================================

type UpdateCustomerRequest struct {
	Notes *string `json:"notes"`
	Email *string `json:"email"`
}

func (h *CustomerHandler) Update(c *gin.Context) {
	tn := middleware.TenantFrom(c)
	id := c.Param("id")

	var customer models.Customer
	if err := h.db.
		Where("id = ? AND business_id = ?", id, tn.BusinessID).
		First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer_not_found"})
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	if req.Notes != nil {
		customer.Notes = *req.Notes
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}

	if err := h.db.Save(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_customer"})
		return
	}

	c.JSON(http.StatusOK, customer)
}
