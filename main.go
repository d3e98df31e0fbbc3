package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"camstore-backend/changefeed"
	"camstore-backend/config"
	"camstore-backend/database"
	"camstore-backend/firebase"
	"camstore-backend/handlers"
	"camstore-backend/models"
	"camstore-backend/popup"
	"camstore-backend/quotepdf"
	"camstore-backend/routes"
	"camstore-backend/schedule"
	"camstore-backend/visibility"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load environment variables
	if err := config.LoadEnv(); err != nil {
		log.Fatal("Error loading .env file:", err)
	}

	// Validate critical environment variables
	if err := config.ValidateEnv(); err != nil {
		log.Fatal("Environment validation failed: ", err)
	}
	promo := config.LoadPromotions()

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Create default admin user if not exists
	if err := database.CreateDefaultAdmin(db); err != nil {
		log.Printf("Warning: Could not create default admin: %v", err)
	}

	//firebase init
	firebase.Init()
	storageClient := firebase.NewStorageClient()

	clock := schedule.NewClock(schedule.LoadZone(promo.Timezone))
	log.Printf("Schedules evaluated in %s", clock.Location)

	bannerPoller := visibility.NewPoller[models.Banner]("banners", func(ctx context.Context) ([]models.Banner, error) {
		return database.ListActiveBanners(ctx, db)
	}, clock, promo.BannerPollInterval)
	offerPoller := visibility.NewPoller[models.Offer]("offers", func(ctx context.Context) ([]models.Offer, error) {
		return database.ListActiveOffers(ctx, db)
	}, clock, promo.OfferPollInterval)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
	bannerPoller.Start(startCtx)
	offerPoller.Start(startCtx)
	cancelStart()

	// Change feed: pushes admin edits to the pollers between ticks
	var (
		feed        changefeed.Feed
		publisher   changefeed.Publisher
		redisClient *redis.Client
		closeFeed   func() error
	)
	switch promo.ChangeFeed {
	case config.FeedPostgres:
		if err := database.InstallChangeTriggers(db, changefeed.NotifyChannel, changefeed.TableBanners, changefeed.TableOffers); err != nil {
			log.Printf("Warning: Could not install change triggers: %v", err)
		}
		pgFeed, err := changefeed.NewPostgresFeed(database.DSN())
		if err != nil {
			log.Printf("Warning: Postgres change feed unavailable, relying on polling: %v", err)
			break
		}
		feed, closeFeed = pgFeed, pgFeed.Close
	case config.FeedRedis:
		redisClient, err = config.ConnectRedis(context.Background(), promo.RedisURL)
		if err != nil {
			log.Printf("Warning: Redis change feed unavailable, relying on polling: %v", err)
			break
		}
		redisFeed := changefeed.NewRedisFeed(redisClient, changefeed.DefaultRedisPrefix)
		feed, publisher = redisFeed, redisFeed
	default:
		hub := changefeed.NewHub()
		feed, publisher = hub, hub
	}

	bridge := changefeed.NewBridge()
	if feed != nil {
		_ = bridge.Bind(feed, changefeed.TableBanners, bannerPoller)
		_ = bridge.Bind(feed, changefeed.TableOffers, offerPoller)
	}

	var popups popup.Store = popup.NewMemoryStore(promo.PopupSessionTTL)
	if redisClient != nil {
		popups = popup.NewRedisStore(redisClient, popup.DefaultRedisPrefix, promo.PopupSessionTTL)
	}

	// Setup Gin router
	r := gin.Default()

	// Limit multipart form memory to 10MB
	r.MaxMultipartMemory = 10 << 20

	// CORS configuration - filter out empty strings from AllowOrigins
	origins := []string{os.Getenv("FRONTEND_URL"), os.Getenv("ADMIN_URL")}
	var filteredOrigins []string
	for _, o := range origins {
		if o != "" {
			filteredOrigins = append(filteredOrigins, o)
		}
	}
	if len(filteredOrigins) == 0 {
		filteredOrigins = []string{"http://localhost:3000"}
		log.Println("WARNING: No CORS origins configured, defaulting to http://localhost:3000")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     filteredOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	// Setup routes
	stopLimiters := routes.SetupRoutes(r, routes.Deps{
		DB:         db,
		Storage:    storageClient,
		Banners:    bannerPoller,
		Offers:     offerPoller,
		Pollers:    map[string]handlers.PollerStatus{"banners": bannerPoller, "offers": offerPoller},
		Publisher:  publisher,
		Popups:     popups,
		Clock:      clock,
		Promotions: promo,
		Shop: quotepdf.ShopInfo{
			Name:    config.GetEnv("SHOP_NAME", "CamStore CCTV Solutions"),
			Phone:   os.Getenv("SHOP_PHONE"),
			Email:   os.Getenv("SHOP_EMAIL"),
			Address: os.Getenv("SHOP_ADDRESS"),
		},
		ShopEmail:     os.Getenv("SHOP_EMAIL"),
		SecureCookies: config.GetEnv("COOKIE_SECURE", "true") == "true",
	})

	// Start server with graceful shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// Run server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	stopLimiters()
	if err := bridge.Close(); err != nil {
		log.Printf("Error closing change feed subscriptions: %v", err)
	}
	if closeFeed != nil {
		if err := closeFeed(); err != nil {
			log.Printf("Error closing change feed: %v", err)
		}
	}
	bannerPoller.Stop()
	offerPoller.Stop()
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing redis client: %v", err)
		}
	}

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
		} else {
			log.Println("Database connection closed")
		}
	}

	log.Println("Server exited gracefully")
}
