package models

import (
	"testing"

	"camstore-backend/clickaction"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}

	tables := []string{
		`CREATE TABLE IF NOT EXISTS "users" (
			"id" TEXT PRIMARY KEY, "email" TEXT NOT NULL UNIQUE, "password" TEXT NOT NULL,
			"name" TEXT, "role" TEXT DEFAULT 'admin', "is_blocked" INTEGER DEFAULT 0,
			"created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "categories" (
			"id" TEXT PRIMARY KEY, "name" TEXT NOT NULL UNIQUE, "slug" TEXT NOT NULL UNIQUE,
			"description" TEXT, "display_order" INTEGER DEFAULT 0,
			"created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "products" (
			"id" TEXT PRIMARY KEY, "name" TEXT NOT NULL, "brand" TEXT, "model_number" TEXT,
			"category_id" TEXT NOT NULL, "price" REAL NOT NULL, "description" TEXT, "resolution" TEXT,
			"night_vision" INTEGER DEFAULT 0, "image_url" TEXT, "in_stock" INTEGER DEFAULT 1,
			"is_featured" INTEGER DEFAULT 0,
			"created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "banners" (
			"id" TEXT PRIMARY KEY, "title" TEXT, "image_url" TEXT NOT NULL,
			"display_order" INTEGER NOT NULL DEFAULT 0, "action_type" TEXT, "action_value" TEXT,
			"image_fit" TEXT DEFAULT 'cover', "auto_slide_seconds" INTEGER DEFAULT 5,
			"is_active" INTEGER NOT NULL DEFAULT 1, "start_date" TEXT, "end_date" TEXT,
			"start_time" TEXT, "end_time" TEXT,
			"created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "offers" (
			"id" TEXT PRIMARY KEY, "title" TEXT NOT NULL, "description" TEXT, "promo_code" TEXT,
			"image_url" TEXT, "discount_type" TEXT DEFAULT 'percentage', "discount_value" REAL DEFAULT 0,
			"is_popup" INTEGER NOT NULL DEFAULT 0, "display_order" INTEGER NOT NULL DEFAULT 0,
			"is_active" INTEGER NOT NULL DEFAULT 1, "start_date" TEXT, "end_date" TEXT,
			"start_time" TEXT, "end_time" TEXT,
			"created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "quotation_requests" (
			"id" TEXT PRIMARY KEY, "kind" TEXT NOT NULL DEFAULT 'quotation', "name" TEXT NOT NULL,
			"phone" TEXT NOT NULL, "email" TEXT, "city" TEXT, "address" TEXT, "property_type" TEXT,
			"camera_count" INTEGER DEFAULT 0, "product_id" TEXT, "budget" REAL, "preferred_date" TEXT,
			"message" TEXT, "status" TEXT NOT NULL DEFAULT 'new',
			"created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
	}

	for _, sql := range tables {
		if err := db.Exec(sql).Error; err != nil {
			t.Fatal(err)
		}
	}
	return db
}

func strPtr(s string) *string { return &s }

// ==================== BeforeCreate Hook Tests ====================

func TestUserBeforeCreateGeneratesUUID(t *testing.T) {
	db := setupTestDB(t)
	user := User{Email: "test@test.com", Password: "hash", Name: "Test"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	if user.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
}

func TestUserBeforeCreatePreservesUUID(t *testing.T) {
	db := setupTestDB(t)
	existingID := uuid.New()
	user := User{ID: existingID, Email: "preserve@test.com", Password: "hash", Name: "Test"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	if user.ID != existingID {
		t.Error("UUID should have been preserved")
	}
}

func TestCategoryAndProductBeforeCreate(t *testing.T) {
	db := setupTestDB(t)
	cat := Category{Name: "Dome Cameras", Slug: "dome-cameras"}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatal(err)
	}
	if cat.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}

	prod := Product{Name: "2MP Dome", CategoryID: cat.ID, Price: decimal.NewFromInt(1899)}
	if err := db.Create(&prod).Error; err != nil {
		t.Fatal(err)
	}
	if prod.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}

	var loaded Product
	db.First(&loaded, "id = ?", prod.ID)
	if !loaded.Price.Equal(decimal.NewFromInt(1899)) {
		t.Errorf("expected price 1899, got %s", loaded.Price)
	}
}

func TestBannerRoundTripKeepsScheduleAndAction(t *testing.T) {
	db := setupTestDB(t)
	b := Banner{
		Title:       "Diwali Sale",
		ImageURL:    "https://storage.googleapis.com/bucket/banners/diwali.jpg",
		ClickAction: clickaction.Action{Type: clickaction.Category, Value: "dome-cameras"},
		Schedule: Schedule{
			IsActive:  false,
			StartDate: strPtr("2025-10-20"),
			EndTime:   strPtr("21:00"),
		},
	}
	if err := db.Create(&b).Error; err != nil {
		t.Fatal(err)
	}
	if b.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}

	var loaded Banner
	if err := db.First(&loaded, "id = ?", b.ID).Error; err != nil {
		t.Fatal(err)
	}
	if loaded.IsActive {
		t.Error("expected is_active=false to be persisted")
	}
	if loaded.ClickAction.Type != clickaction.Category || loaded.ClickAction.Value != "dome-cameras" {
		t.Errorf("unexpected click action %+v", loaded.ClickAction)
	}
	w := loaded.ScheduleWindow()
	if w.StartDate != "2025-10-20" || w.EndTime != "21:00" || w.EndDate != "" || w.StartTime != "" {
		t.Errorf("unexpected window %+v", w)
	}
	if loaded.ImageFit != FitCover || loaded.AutoSlideSeconds != DefaultAutoSlideSeconds {
		t.Errorf("expected defaults cover/5, got %s/%d", loaded.ImageFit, loaded.AutoSlideSeconds)
	}
}

func TestOfferBeforeCreate(t *testing.T) {
	db := setupTestDB(t)
	o := Offer{
		Title:    "Festive Combo",
		Discount: Discount{Type: DiscountFixed, Value: decimal.NewFromInt(500)},
		Schedule: Schedule{IsActive: true},
	}
	if err := db.Create(&o).Error; err != nil {
		t.Fatal(err)
	}
	if o.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}

	var loaded Offer
	db.First(&loaded, "id = ?", o.ID)
	if loaded.Discount.Type != DiscountFixed || !loaded.Discount.Value.Equal(decimal.NewFromInt(500)) {
		t.Errorf("unexpected discount %+v", loaded.Discount)
	}
}

func TestQuotationRequestDefaults(t *testing.T) {
	db := setupTestDB(t)
	q := QuotationRequest{Name: "Ravi", Phone: "9876543210", Kind: QuotationKindBooking, Status: QuotationStatusNew}
	if err := db.Create(&q).Error; err != nil {
		t.Fatal(err)
	}
	if q.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
}

// ==================== Schedule ====================

func TestScheduleWindowNilBoundsAreEmpty(t *testing.T) {
	w := Schedule{IsActive: true}.ScheduleWindow()
	if !w.IsActive || w.StartDate != "" || w.EndDate != "" || w.StartTime != "" || w.EndTime != "" {
		t.Errorf("unexpected window %+v", w)
	}
}

// ==================== Discount ====================

func TestDiscountLabel(t *testing.T) {
	tests := []struct {
		d    Discount
		want string
	}{
		{Discount{Type: DiscountPercentage, Value: decimal.NewFromInt(20)}, "20% OFF"},
		{Discount{Type: DiscountPercentage, Value: decimal.RequireFromString("12.5")}, "12.5% OFF"},
		{Discount{Type: DiscountFixed, Value: decimal.NewFromInt(500)}, "₹500 OFF"},
		{Discount{Type: "bogo"}, ""},
	}
	for _, tc := range tests {
		if got := tc.d.Label(); got != tc.want {
			t.Errorf("Label(%+v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestDiscountApply(t *testing.T) {
	price := decimal.NewFromInt(2000)

	pct := Discount{Type: DiscountPercentage, Value: decimal.NewFromInt(15)}
	if got := pct.Apply(price); !got.Equal(decimal.NewFromInt(1700)) {
		t.Errorf("expected 1700, got %s", got)
	}

	fixed := Discount{Type: DiscountFixed, Value: decimal.NewFromInt(500)}
	if got := fixed.Apply(price); !got.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected 1500, got %s", got)
	}

	tooMuch := Discount{Type: DiscountFixed, Value: decimal.NewFromInt(5000)}
	if got := tooMuch.Apply(price); !got.IsZero() {
		t.Errorf("expected 0, got %s", got)
	}

	unknown := Discount{Type: "mystery", Value: decimal.NewFromInt(10)}
	if got := unknown.Apply(price); !got.Equal(price) {
		t.Errorf("expected unchanged price, got %s", got)
	}
}

func TestValidQuotationStatus(t *testing.T) {
	for _, s := range QuotationStatuses {
		if !ValidQuotationStatus(s) {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if ValidQuotationStatus("archived") {
		t.Error("expected archived to be invalid")
	}
}

func TestValidFit(t *testing.T) {
	if !ValidFit(FitContain) || ValidFit("stretch") {
		t.Error("unexpected fit validation result")
	}
}
