package handlers

import (
	"errors"
	"log"
	"net/http"

	"camstore-backend/changefeed"
	"camstore-backend/clickaction"
	"camstore-backend/database"
	"camstore-backend/firebase"
	"camstore-backend/models"
	"camstore-backend/schedule"
	"camstore-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BannerHandler struct {
	DB              *gorm.DB
	Storage         firebase.StorageClient
	Live            VisibleSource[models.Banner]
	Publisher       changefeed.Publisher
	Clock           schedule.Clock
	WhatsAppNumber  string
	WhatsAppMessage string
}

type bannerForm struct {
	Title            string           `form:"title" binding:"max=200"`
	DisplayOrder     *int             `form:"display_order" binding:"omitempty,gte=0"`
	ActionType       clickaction.Type `form:"action_type" binding:"omitempty,oneof=none product category offers services whatsapp external"`
	ActionValue      string           `form:"action_value"`
	ImageFit         string           `form:"image_fit" binding:"omitempty,oneof=cover contain fill"`
	AutoSlideSeconds int              `form:"auto_slide_seconds" binding:"omitempty,gte=1,lte=60"`
	scheduleForm
}

func (f bannerForm) apply(b *models.Banner) {
	b.Title = f.Title
	if f.DisplayOrder != nil {
		b.DisplayOrder = *f.DisplayOrder
	}
	b.ClickAction = clickaction.Action{Type: f.ActionType, Value: f.ActionValue}
	if b.ClickAction.Type == "" {
		b.ClickAction.Type = clickaction.None
	}
	b.ImageFit = f.ImageFit
	if b.ImageFit == "" {
		b.ImageFit = models.FitCover
	}
	b.AutoSlideSeconds = f.AutoSlideSeconds
	if b.AutoSlideSeconds == 0 {
		b.AutoSlideSeconds = models.DefaultAutoSlideSeconds
	}
	b.Schedule = f.toSchedule()
}

// bindBannerForm binds and validates the multipart form, writing a 400 on failure.
func bindBannerForm(c *gin.Context) (bannerForm, bool) {
	var form bannerForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return form, false
	}
	if form.datesInverted() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must not be before start_date"})
		return form, false
	}
	return form, true
}

// GetBanners returns the banners visible right now, in display order.
func (h *BannerHandler) GetBanners(c *gin.Context) {
	c.JSON(http.StatusOK, h.Live.Visible())
}

// GetBannerAction resolves what tapping a live banner should do.
func (h *BannerHandler) GetBannerAction(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	for _, b := range h.Live.Visible() {
		if b.ID == id {
			c.JSON(http.StatusOK, gin.H{
				"action":  b.ClickAction,
				"intents": clickaction.Resolve(b.ClickAction, h.WhatsAppNumber, h.WhatsAppMessage),
			})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
}

// ListBanners returns every banner with its current schedule status.
func (h *BannerHandler) ListBanners(c *gin.Context) {
	var banners []models.Banner
	if err := h.DB.Order("display_order ASC").Order("created_at ASC").Find(&banners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch banners"})
		return
	}
	c.JSON(http.StatusOK, withStatus(banners, h.Clock.Now()))
}

func (h *BannerHandler) GetBanner(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var banner models.Banner
	if err := h.DB.Where("id = ?", id).First(&banner).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
		return
	}
	c.JSON(http.StatusOK, statusOf[models.Banner]{Item: banner, Status: schedule.Evaluate(banner.ScheduleWindow(), h.Clock.Now())})
}

func (h *BannerHandler) CreateBanner(c *gin.Context) {
	form, ok := bindBannerForm(c)
	if !ok {
		return
	}

	var banner models.Banner
	form.apply(&banner)
	if form.DisplayOrder == nil {
		next, err := database.NextDisplayOrder[models.Banner](c.Request.Context(), h.DB)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create banner"})
			return
		}
		banner.DisplayOrder = next
	}

	imageURL, ok := receiveImage(c, h.Storage.UploadBannerImage, true)
	if !ok {
		return
	}
	banner.ImageURL = imageURL

	if err := h.DB.Create(&banner).Error; err != nil {
		log.Printf("Failed to create banner: %v", err)
		deleteImage(c.Request.Context(), h.Storage.DeleteFile, imageURL)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create banner"})
		return
	}

	publishChange(c.Request.Context(), h.Publisher, changefeed.TableBanners, changefeed.Insert, banner.ID)
	c.JSON(http.StatusCreated, banner)
}

func (h *BannerHandler) UpdateBanner(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var banner models.Banner
	if err := h.DB.Where("id = ?", id).First(&banner).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
		return
	}

	form, ok := bindBannerForm(c)
	if !ok {
		return
	}
	form.apply(&banner)

	imageURL, ok := receiveImage(c, h.Storage.UploadBannerImage, false)
	if !ok {
		return
	}
	if imageURL != "" {
		deleteImage(c.Request.Context(), h.Storage.DeleteFile, banner.ImageURL)
		banner.ImageURL = imageURL
	}

	if err := h.DB.Save(&banner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update banner"})
		return
	}

	publishChange(c.Request.Context(), h.Publisher, changefeed.TableBanners, changefeed.Update, banner.ID)
	c.JSON(http.StatusOK, banner)
}

func (h *BannerHandler) DeleteBanner(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var banner models.Banner
	if err := h.DB.Where("id = ?", id).First(&banner).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
		return
	}

	if err := h.DB.Delete(&models.Banner{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete banner"})
		return
	}
	deleteImage(c.Request.Context(), h.Storage.DeleteFile, banner.ImageURL)

	publishChange(c.Request.Context(), h.Publisher, changefeed.TableBanners, changefeed.Delete, banner.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Banner deleted successfully"})
}

// SwapBanners exchanges the display order of two banners.
func (h *BannerHandler) SwapBanners(c *gin.Context) {
	var req swapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	err := database.SwapDisplayOrder[models.Banner](c.Request.Context(), h.DB, req.FirstID, req.SecondID)
	switch {
	case errors.Is(err, database.ErrSameRow):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder banners"})
		return
	}

	publishChange(c.Request.Context(), h.Publisher, changefeed.TableBanners, changefeed.Update, req.FirstID)
	publishChange(c.Request.Context(), h.Publisher, changefeed.TableBanners, changefeed.Update, req.SecondID)
	c.JSON(http.StatusOK, gin.H{"message": "Banners reordered"})
}
