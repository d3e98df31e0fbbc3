package handlers

import (
	"log"
	"net/http"

	"camstore-backend/firebase"
	"camstore-backend/models"
	"camstore-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB      *gorm.DB
	Storage firebase.StorageClient
}

type productForm struct {
	Name        string    `form:"name" binding:"required,max=200"`
	Brand       string    `form:"brand" binding:"max=100"`
	ModelNumber string    `form:"model_number" binding:"max=100"`
	CategoryID  string    `form:"category_id" binding:"required,uuid"`
	Price       string    `form:"price" binding:"required"`
	Description string    `form:"description"`
	Resolution  string    `form:"resolution" binding:"max=20"`
	NightVision bool      `form:"night_vision"`
	InStock     *bool     `form:"in_stock"`
	IsFeatured  bool      `form:"is_featured"`
}

func (f productForm) apply(p *models.Product, price decimal.Decimal) {
	p.Name = f.Name
	p.Brand = f.Brand
	p.ModelNumber = f.ModelNumber
	p.CategoryID = uuid.MustParse(f.CategoryID)
	p.Price = price
	p.Description = f.Description
	p.Resolution = f.Resolution
	p.NightVision = f.NightVision
	p.InStock = f.InStock == nil || *f.InStock
	p.IsFeatured = f.IsFeatured
}

// bindProductForm validates the form and checks the category exists.
func (h *ProductHandler) bindProductForm(c *gin.Context) (productForm, decimal.Decimal, bool) {
	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return form, decimal.Zero, false
	}

	price, err := decimal.NewFromString(form.Price)
	if err != nil || price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a non-negative number"})
		return form, decimal.Zero, false
	}

	var count int64
	h.DB.Model(&models.Category{}).Where("id = ?", form.CategoryID).Count(&count)
	if count == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
		return form, decimal.Zero, false
	}
	return form, price.Round(2), true
}

// GetProducts lists the catalog. Filters: category (slug), category_id,
// featured, search; paginated with page/limit.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	query := h.DB.Model(&models.Product{})

	if slug := c.Query("category"); slug != "" {
		query = query.Where("category_id IN (?)", h.DB.Model(&models.Category{}).Select("id").Where("slug = ?", slug))
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if c.Query("featured") == "true" {
		query = query.Where("is_featured = ?", true)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(brand) LIKE LOWER(?)", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	page, limit, offset := pagination(c, 24)
	products := []models.Product{}
	if err := query.Preload("Category").Order("is_featured DESC").Order("name ASC").
		Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var product models.Product
	if err := h.DB.Preload("Category").Where("id = ?", id).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	form, price, ok := h.bindProductForm(c)
	if !ok {
		return
	}

	var product models.Product
	form.apply(&product, price)

	imageURL, ok := receiveImage(c, h.Storage.UploadProductImage, false)
	if !ok {
		return
	}
	product.ImageURL = imageURL

	if err := h.DB.Create(&product).Error; err != nil {
		log.Printf("Failed to create product: %v", err)
		deleteImage(c.Request.Context(), h.Storage.DeleteFile, imageURL)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var product models.Product
	if err := h.DB.Where("id = ?", id).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	form, price, ok := h.bindProductForm(c)
	if !ok {
		return
	}
	form.apply(&product, price)

	imageURL, ok := receiveImage(c, h.Storage.UploadProductImage, false)
	if !ok {
		return
	}
	if imageURL != "" {
		deleteImage(c.Request.Context(), h.Storage.DeleteFile, product.ImageURL)
		product.ImageURL = imageURL
	}

	if err := h.DB.Omit("Category").Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var product models.Product
	if err := h.DB.Where("id = ?", id).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if err := h.DB.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	deleteImage(c.Request.Context(), h.Storage.DeleteFile, product.ImageURL)

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
