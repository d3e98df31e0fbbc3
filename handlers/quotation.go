package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"camstore-backend/clickaction"
	"camstore-backend/models"
	"camstore-backend/quotepdf"
	"camstore-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type QuotationHandler struct {
	DB              *gorm.DB
	Shop            quotepdf.ShopInfo
	ShopEmail       string
	WhatsAppNumber  string
	WhatsAppMessage string
}

type quotationRequest struct {
	Kind          string           `json:"kind" binding:"omitempty,oneof=quotation booking"`
	Name          string           `json:"name" binding:"required,max=100"`
	Phone         string           `json:"phone" binding:"required,min=7,max=20"`
	Email         string           `json:"email" binding:"omitempty,email"`
	City          string           `json:"city" binding:"max=100"`
	Address       string           `json:"address" binding:"max=500"`
	PropertyType  string           `json:"property_type" binding:"omitempty,oneof=home shop office warehouse other"`
	CameraCount   int              `json:"camera_count" binding:"gte=0,lte=256"`
	ProductID     *uuid.UUID       `json:"product_id"`
	Budget        *decimal.Decimal `json:"budget"`
	PreferredDate string           `json:"preferred_date" binding:"omitempty,datetime=2006-01-02"`
	Message       string           `json:"message" binding:"max=2000"`
}

// followUpMessage prefills the WhatsApp chat the visitor can open after submitting.
func followUpMessage(q models.QuotationRequest) string {
	ref := strings.ToUpper(q.ID.String()[:8])
	if q.Kind == models.QuotationKindBooking {
		return fmt.Sprintf("Hi, I booked a site visit (ref %s). My name is %s.", ref, q.Name)
	}
	return fmt.Sprintf("Hi, I requested a CCTV quotation (ref %s). My name is %s.", ref, q.Name)
}

// CreateQuotation stores a quote or booking request from the storefront.
func (h *QuotationHandler) CreateQuotation(c *gin.Context) {
	var req quotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Budget != nil && req.Budget.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "budget must not be negative"})
		return
	}

	if req.ProductID != nil {
		var count int64
		if err := h.DB.Model(&models.Product{}).Where("id = ?", *req.ProductID).Count(&count).Error; err != nil {
			log.Printf("Failed to look up product %s: %v", *req.ProductID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit request"})
			return
		}
		if count == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found"})
			return
		}
	}

	q := models.QuotationRequest{
		Kind:          req.Kind,
		Name:          strings.TrimSpace(req.Name),
		Phone:         strings.TrimSpace(req.Phone),
		Email:         req.Email,
		City:          req.City,
		Address:       req.Address,
		PropertyType:  req.PropertyType,
		CameraCount:   req.CameraCount,
		ProductID:     req.ProductID,
		PreferredDate: req.PreferredDate,
		Message:       req.Message,
		Status:        models.QuotationStatusNew,
	}
	if q.Kind == "" {
		q.Kind = models.QuotationKindQuote
	}
	if req.Budget != nil {
		q.Budget = decimal.NewNullDecimal(req.Budget.Round(2))
	}

	if err := h.DB.Create(&q).Error; err != nil {
		log.Printf("Failed to save quotation request: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit request"})
		return
	}

	utils.SendQuotationNotification(h.ShopEmail, q)
	utils.SendQuotationAcknowledgement(q)

	d := clickaction.Dispatcher{WhatsAppNumber: h.WhatsAppNumber, DefaultMessage: h.WhatsAppMessage}
	c.JSON(http.StatusCreated, gin.H{
		"quotation":     q,
		"whatsapp_link": d.WhatsAppLink(followUpMessage(q)),
	})
}

// ListQuotations returns requests newest first, filtered by status and kind.
func (h *QuotationHandler) ListQuotations(c *gin.Context) {
	query := h.DB.Model(&models.QuotationRequest{})
	if status := c.Query("status"); status != "" {
		if !models.ValidQuotationStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		query = query.Where("status = ?", status)
	}
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quotations"})
		return
	}

	page, limit, offset := pagination(c, 20)
	quotations := []models.QuotationRequest{}
	if err := query.Preload("Product").Order("created_at DESC").
		Limit(limit).Offset(offset).Find(&quotations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quotations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quotations": quotations,
		"total":      total,
		"page":       page,
		"limit":      limit,
	})
}

func (h *QuotationHandler) UpdateQuotationStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required,oneof=new contacted quoted closed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var q models.QuotationRequest
	if err := h.DB.Where("id = ?", id).First(&q).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quotation not found"})
		return
	}

	if err := h.DB.Model(&q).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}
	q.Status = req.Status

	c.JSON(http.StatusOK, q)
}

// GetQuotationPDF streams the printable version of a request.
func (h *QuotationHandler) GetQuotationPDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var q models.QuotationRequest
	if err := h.DB.Preload("Product").Where("id = ?", id).First(&q).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quotation not found"})
		return
	}

	buf, err := quotepdf.Render(q, h.Shop)
	if err != nil {
		log.Printf("Failed to render quotation %s: %v", q.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	filename := fmt.Sprintf("quotation-%s.pdf", q.ID.String()[:8])
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
