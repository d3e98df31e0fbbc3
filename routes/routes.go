package routes

import (
	"time"

	"camstore-backend/changefeed"
	"camstore-backend/config"
	"camstore-backend/firebase"
	"camstore-backend/handlers"
	"camstore-backend/middleware"
	"camstore-backend/models"
	"camstore-backend/popup"
	"camstore-backend/quotepdf"
	"camstore-backend/schedule"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps is everything the HTTP layer needs from main.
type Deps struct {
	DB         *gorm.DB
	Storage    firebase.StorageClient
	Banners    handlers.VisibleSource[models.Banner]
	Offers     handlers.VisibleSource[models.Offer]
	Pollers    map[string]handlers.PollerStatus
	Publisher  changefeed.Publisher
	Popups     popup.Store
	Clock      schedule.Clock
	Promotions config.Promotions
	Shop       quotepdf.ShopInfo
	ShopEmail  string

	// SecureCookies marks the session cookie Secure (HTTPS deployments).
	SecureCookies bool
}

// SetupRoutes registers every route on r. The returned func stops the
// background workers of the rate limiters.
func SetupRoutes(r *gin.Engine, d Deps) func() {
	p := d.Promotions

	authHandler := &handlers.AuthHandler{DB: d.DB}
	bannerHandler := &handlers.BannerHandler{
		DB:              d.DB,
		Storage:         d.Storage,
		Live:            d.Banners,
		Publisher:       d.Publisher,
		Clock:           d.Clock,
		WhatsAppNumber:  p.WhatsAppNumber,
		WhatsAppMessage: p.WhatsAppMessage,
	}
	offerHandler := &handlers.OfferHandler{
		DB:        d.DB,
		Storage:   d.Storage,
		Live:      d.Offers,
		Publisher: d.Publisher,
		Popups:    d.Popups,
		Clock:     d.Clock,
	}
	productHandler := &handlers.ProductHandler{DB: d.DB, Storage: d.Storage}
	categoryHandler := &handlers.CategoryHandler{DB: d.DB}
	quotationHandler := &handlers.QuotationHandler{
		DB:              d.DB,
		Shop:            d.Shop,
		ShopEmail:       d.ShopEmail,
		WhatsAppNumber:  p.WhatsAppNumber,
		WhatsAppMessage: p.WhatsAppMessage,
	}
	scheduleHandler := &handlers.ScheduleHandler{Clock: d.Clock}
	healthHandler := &handlers.HealthHandler{DB: d.DB, Pollers: d.Pollers}

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	quoteLimiter := middleware.NewRateLimiter(5, time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		api.POST("/auth/login", loginLimiter.Middleware(), authHandler.Login)
		api.POST("/auth/refresh", authHandler.RefreshToken)

		// Storefront promotions
		api.GET("/banners", bannerHandler.GetBanners)
		api.GET("/banners/:id/action", bannerHandler.GetBannerAction)
		api.GET("/offers", offerHandler.GetOffers)
		api.GET("/offers/popup", middleware.SessionMiddleware(p.PopupSessionTTL, d.SecureCookies), offerHandler.GetPopupOffer)

		// Catalog
		api.GET("/products", productHandler.GetProducts)
		api.GET("/products/:id", productHandler.GetProduct)
		api.GET("/categories", categoryHandler.GetCategories)
		api.GET("/categories/:slug", categoryHandler.GetCategory)

		api.POST("/quotations", quoteLimiter.Middleware(), quotationHandler.CreateQuotation)
	}

	// Admin routes (require admin role)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/me", authHandler.GetProfile)
		admin.POST("/change-password", authHandler.ChangePassword)

		// Banner management
		admin.GET("/banners", bannerHandler.ListBanners)
		admin.GET("/banners/:id", bannerHandler.GetBanner)
		admin.POST("/banners", bannerHandler.CreateBanner)
		admin.PUT("/banners/:id", bannerHandler.UpdateBanner)
		admin.DELETE("/banners/:id", bannerHandler.DeleteBanner)
		admin.POST("/banners/swap", bannerHandler.SwapBanners)

		// Offer management
		admin.GET("/offers", offerHandler.ListOffers)
		admin.GET("/offers/:id", offerHandler.GetOffer)
		admin.POST("/offers", offerHandler.CreateOffer)
		admin.PUT("/offers/:id", offerHandler.UpdateOffer)
		admin.DELETE("/offers/:id", offerHandler.DeleteOffer)
		admin.POST("/offers/swap", offerHandler.SwapOffers)

		// Product management
		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)

		// Category management
		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)

		// Quotations
		admin.GET("/quotations", quotationHandler.ListQuotations)
		admin.PUT("/quotations/:id/status", quotationHandler.UpdateQuotationStatus)
		admin.GET("/quotations/:id/pdf", quotationHandler.GetQuotationPDF)

		admin.GET("/schedule/preview", scheduleHandler.Preview)
	}

	r.GET("/health", healthHandler.Health)

	return func() {
		loginLimiter.Stop()
		quoteLimiter.Stop()
	}
}
