package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonkit/salon-scheduler/internal/middleware"
	"github.com/salonkit/salon-scheduler/internal/models"
	"github.com/salonkit/salon-scheduler/internal/timegrid"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

type WorkingDayConfig struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	Closed    bool   `json:"is_closed"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	tn := middleware.TenantFrom(c)

	var hours []models.WorkingHours
	if err := h.db.
		Where("business_id = ?", tn.BusinessID).
		Order("day_of_week ASC").
		Find(&hours).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_working_hours"})
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update substitui a configuração inteira da semana de uma vez,
// garantindo no máximo uma linha por dia.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	tn := middleware.TenantFrom(c)

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	seen := map[int]bool{}
	for _, d := range req.Days {
		if seen[d.DayOfWeek] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duplicate_day_of_week"})
			return
		}
		seen[d.DayOfWeek] = true

		if !d.Closed {
			if _, err := timegrid.ToMinutes(d.StartTime); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_start_time"})
				return
			}
			if _, err := timegrid.ToMinutes(d.EndTime); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_end_time"})
				return
			}
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("business_id = ?", tn.BusinessID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		var toCreate []models.WorkingHours
		for _, d := range req.Days {
			toCreate = append(toCreate, models.WorkingHours{
				BusinessID: tn.BusinessID,
				DayOfWeek:  d.DayOfWeek,
				Closed:     d.Closed,
				StartTime:  d.StartTime,
				EndTime:    d.EndTime,
			})
		}

		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_working_hours"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
