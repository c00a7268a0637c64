package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonkit/salon-scheduler/internal/httperr"
	"github.com/salonkit/salon-scheduler/internal/media"
	"github.com/salonkit/salon-scheduler/internal/middleware"
	"github.com/salonkit/salon-scheduler/internal/models"
)

const maxUploadBytes = 8 << 20 // 8 MiB

type MediaHandler struct {
	db      *gorm.DB
	storage media.Storage
}

func NewMediaHandler(db *gorm.DB, storage media.Storage) *MediaHandler {
	return &MediaHandler{db: db, storage: storage}
}

func (h *MediaHandler) upload(c *gin.Context, key string) (string, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Arquivo de imagem obrigatório.")
		return "", false
	}
	if file.Size > maxUploadBytes {
		httperr.BadRequest(c, "image_too_large", "Imagem muito grande.")
		return "", false
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Erro ao ler imagem.")
		return "", false
	}
	defer src.Close()

	converted, err := media.ToWebP(src)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida (use JPEG ou PNG).")
		return "", false
	}

	url, err := h.storage.Put(c.Request.Context(), key, converted, "image/webp")
	if err != nil {
		httperr.Internal(c, "failed_to_store_image", "Erro ao armazenar imagem.")
		return "", false
	}

	return url, true
}

// UploadLogo troca o logo do salão.
func (h *MediaHandler) UploadLogo(c *gin.Context) {
	tn := middleware.TenantFrom(c)

	key := fmt.Sprintf("businesses/%d/logo.webp", tn.BusinessID)
	url, ok := h.upload(c, key)
	if !ok {
		return
	}

	if err := h.db.
		Model(&models.Business{}).
		Where("id = ?", tn.BusinessID).
		Update("logo_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_business", "Erro ao salvar logo.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}

// UploadStaffPhoto troca a foto de um profissional.
func (h *MediaHandler) UploadStaffPhoto(c *gin.Context) {
	tn := middleware.TenantFrom(c)
	id := c.Param("id")

	var st models.Staff
	if err := h.db.
		Where("id = ? AND business_id = ?", id, tn.BusinessID).
		First(&st).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Profissional não encontrado.")
		return
	}

	key := fmt.Sprintf("businesses/%d/staff/%d.webp", tn.BusinessID, st.ID)
	url, ok := h.upload(c, key)
	if !ok {
		return
	}

	st.PhotoURL = url
	if err := h.db.Save(&st).Error; err != nil {
		httperr.Internal(c, "failed_to_update_staff", "Erro ao salvar foto.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}
