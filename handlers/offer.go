package handlers

import (
	"errors"
	"log"
	"net/http"

	"camstore-backend/changefeed"
	"camstore-backend/database"
	"camstore-backend/firebase"
	"camstore-backend/middleware"
	"camstore-backend/models"
	"camstore-backend/popup"
	"camstore-backend/schedule"
	"camstore-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OfferHandler struct {
	DB        *gorm.DB
	Storage   firebase.StorageClient
	Live      VisibleSource[models.Offer]
	Publisher changefeed.Publisher
	Popups    popup.Store
	Clock     schedule.Clock
}

type offerForm struct {
	Title         string `form:"title" binding:"required,max=200"`
	Description   string `form:"description"`
	PromoCode     string `form:"promo_code" binding:"max=40"`
	DiscountType  string `form:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue string `form:"discount_value" binding:"required"`
	IsPopup       bool   `form:"is_popup"`
	DisplayOrder  *int   `form:"display_order" binding:"omitempty,gte=0"`
	scheduleForm
}

var hundred = decimal.NewFromInt(100)

// discount parses and range-checks the discount fields.
func (f offerForm) discount() (models.Discount, error) {
	v, err := decimal.NewFromString(f.DiscountValue)
	if err != nil {
		return models.Discount{}, errors.New("discount_value must be a number")
	}
	if v.IsNegative() {
		return models.Discount{}, errors.New("discount_value must not be negative")
	}
	if f.DiscountType == models.DiscountPercentage && v.GreaterThan(hundred) {
		return models.Discount{}, errors.New("percentage discount must be at most 100")
	}
	return models.Discount{Type: f.DiscountType, Value: v.Round(2)}, nil
}

func bindOfferForm(c *gin.Context) (offerForm, models.Discount, bool) {
	var form offerForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return form, models.Discount{}, false
	}
	if form.datesInverted() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must not be before start_date"})
		return form, models.Discount{}, false
	}
	d, err := form.discount()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return form, models.Discount{}, false
	}
	return form, d, true
}

func (f offerForm) apply(o *models.Offer, d models.Discount) {
	o.Title = f.Title
	o.Description = f.Description
	o.PromoCode = f.PromoCode
	o.Discount = d
	o.IsPopup = f.IsPopup
	if f.DisplayOrder != nil {
		o.DisplayOrder = *f.DisplayOrder
	}
	o.Schedule = f.toSchedule()
}

// GetOffers returns the offers visible right now.
func (h *OfferHandler) GetOffers(c *gin.Context) {
	c.JSON(http.StatusOK, h.Live.Visible())
}

// GetPopupOffer returns the next live popup offer this visitor session has
// not seen yet, or 204 when there is none.
func (h *OfferHandler) GetPopupOffer(c *gin.Context) {
	session := middleware.SessionID(c)
	if session == "" {
		c.Status(http.StatusNoContent)
		return
	}

	offer, ok := popup.Next(c.Request.Context(), h.Popups, session, h.Live.Visible())
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, offer)
}

// ListOffers returns every offer with its current schedule status.
func (h *OfferHandler) ListOffers(c *gin.Context) {
	var offers []models.Offer
	if err := h.DB.Order("display_order ASC").Order("created_at ASC").Find(&offers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch offers"})
		return
	}
	c.JSON(http.StatusOK, withStatus(offers, h.Clock.Now()))
}

func (h *OfferHandler) GetOffer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var offer models.Offer
	if err := h.DB.Where("id = ?", id).First(&offer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
		return
	}
	c.JSON(http.StatusOK, statusOf[models.Offer]{Item: offer, Status: schedule.Evaluate(offer.ScheduleWindow(), h.Clock.Now())})
}

func (h *OfferHandler) CreateOffer(c *gin.Context) {
	form, d, ok := bindOfferForm(c)
	if !ok {
		return
	}

	var offer models.Offer
	form.apply(&offer, d)
	if form.DisplayOrder == nil {
		next, err := database.NextDisplayOrder[models.Offer](c.Request.Context(), h.DB)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create offer"})
			return
		}
		offer.DisplayOrder = next
	}

	imageURL, ok := receiveImage(c, h.Storage.UploadOfferImage, false)
	if !ok {
		return
	}
	offer.ImageURL = imageURL

	if err := h.DB.Create(&offer).Error; err != nil {
		log.Printf("Failed to create offer: %v", err)
		deleteImage(c.Request.Context(), h.Storage.DeleteFile, imageURL)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create offer"})
		return
	}

	publishChange(c.Request.Context(), h.Publisher, changefeed.TableOffers, changefeed.Insert, offer.ID)
	c.JSON(http.StatusCreated, offer)
}

func (h *OfferHandler) UpdateOffer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var offer models.Offer
	if err := h.DB.Where("id = ?", id).First(&offer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
		return
	}

	form, d, ok := bindOfferForm(c)
	if !ok {
		return
	}
	form.apply(&offer, d)

	imageURL, ok := receiveImage(c, h.Storage.UploadOfferImage, false)
	if !ok {
		return
	}
	if imageURL != "" {
		deleteImage(c.Request.Context(), h.Storage.DeleteFile, offer.ImageURL)
		offer.ImageURL = imageURL
	}

	if err := h.DB.Save(&offer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update offer"})
		return
	}

	publishChange(c.Request.Context(), h.Publisher, changefeed.TableOffers, changefeed.Update, offer.ID)
	c.JSON(http.StatusOK, offer)
}

func (h *OfferHandler) DeleteOffer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var offer models.Offer
	if err := h.DB.Where("id = ?", id).First(&offer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
		return
	}

	if err := h.DB.Delete(&models.Offer{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete offer"})
		return
	}
	deleteImage(c.Request.Context(), h.Storage.DeleteFile, offer.ImageURL)

	publishChange(c.Request.Context(), h.Publisher, changefeed.TableOffers, changefeed.Delete, offer.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Offer deleted successfully"})
}

// SwapOffers exchanges the display order of two offers.
func (h *OfferHandler) SwapOffers(c *gin.Context) {
	var req swapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	err := database.SwapDisplayOrder[models.Offer](c.Request.Context(), h.DB, req.FirstID, req.SecondID)
	switch {
	case errors.Is(err, database.ErrSameRow):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder offers"})
		return
	}

	publishChange(c.Request.Context(), h.Publisher, changefeed.TableOffers, changefeed.Update, req.FirstID)
	publishChange(c.Request.Context(), h.Publisher, changefeed.TableOffers, changefeed.Update, req.SecondID)
	c.JSON(http.StatusOK, gin.H{"message": "Offers reordered"})
}
