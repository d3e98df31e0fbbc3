package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"camstore-backend/changefeed"
	"camstore-backend/clickaction"
	"camstore-backend/models"

	"github.com/google/uuid"
)

func TestGetBannersReturnsLiveList(t *testing.T) {
	db := freshDB()
	live := []models.Banner{
		{ID: uuid.New(), Title: "First", DisplayOrder: 0},
		{ID: uuid.New(), Title: "Second", DisplayOrder: 1},
	}
	router, _, _ := setupBannerRouter(db, live)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/banners", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	result := parseResponseArray(w)
	if len(result) != 2 {
		t.Fatalf("expected 2 banners, got %d", len(result))
	}
	if result[0].(map[string]interface{})["title"] != "First" {
		t.Errorf("expected display order to be kept, got %v", result[0])
	}
}

func TestGetBannersEmptyIsArray(t *testing.T) {
	db := freshDB()
	router, _, _ := setupBannerRouter(db, []models.Banner{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/banners", nil))

	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("expected [], got %s", w.Body.String())
	}
}

func TestGetBannerActionWhatsApp(t *testing.T) {
	db := freshDB()
	b := models.Banner{
		ID:          uuid.New(),
		ClickAction: clickaction.Action{Type: clickaction.WhatsApp, Value: "Need 4 cameras"},
	}
	router, _, _ := setupBannerRouter(db, []models.Banner{b})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", fmt.Sprintf("/api/banners/%s/action", b.ID), nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	intents, ok := parseResponse(w)["intents"].([]interface{})
	if !ok || len(intents) != 1 {
		t.Fatalf("expected one intent, got %v", parseResponse(w)["intents"])
	}
	intent := intents[0].(map[string]interface{})
	if intent["kind"] != "external" {
		t.Errorf("expected external intent, got %v", intent["kind"])
	}
	if intent["target"] != "https://wa.me/919800000000?text=Need+4+cameras" {
		t.Errorf("unexpected target %v", intent["target"])
	}
}

func TestGetBannerActionCategorySignals(t *testing.T) {
	db := freshDB()
	b := models.Banner{
		ID:          uuid.New(),
		ClickAction: clickaction.Action{Type: clickaction.Category, Value: "dome-cameras"},
	}
	router, _, _ := setupBannerRouter(db, []models.Banner{b})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", fmt.Sprintf("/api/banners/%s/action", b.ID), nil))

	intents := parseResponse(w)["intents"].([]interface{})
	if len(intents) != 2 {
		t.Fatalf("expected navigate + signal, got %v", intents)
	}
	if intents[0].(map[string]interface{})["target"] != clickaction.RouteCatalog {
		t.Errorf("expected navigation to catalog first, got %v", intents[0])
	}
	if intents[1].(map[string]interface{})["kind"] != "signal" {
		t.Errorf("expected a catalog signal second, got %v", intents[1])
	}
}

func TestGetBannerActionNotLive(t *testing.T) {
	db := freshDB()
	router, _, _ := setupBannerRouter(db, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", fmt.Sprintf("/api/banners/%s/action", uuid.New()), nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/banners/not-a-uuid/action", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestListBannersIncludesScheduleStatus(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)
	seedBanner(db, "live", 0, true)
	seedBanner(db, "off", 1, false)
	router, _, _ := setupBannerRouter(db, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/admin/banners", nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	result := parseResponseArray(w)
	if len(result) != 2 {
		t.Fatalf("expected 2 banners, got %d", len(result))
	}
	want := []string{"live", "off"}
	for i, row := range result {
		status := row.(map[string]interface{})["schedule_status"].(map[string]interface{})["status"]
		if status != want[i] {
			t.Errorf("row %d: expected status %s, got %v", i, want[i], status)
		}
	}
}

func TestCreateBannerRequiresImage(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)
	router, _, _ := setupBannerRouter(db, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("POST", "/api/admin/banners", map[string]string{"title": "No image"}, nil, token))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateBannerAppendsAndPublishes(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)
	seedBanner(db, "existing", 3, true)
	router, storage, pub := setupBannerRouter(db, nil)

	fields := map[string]string{
		"title":       "Diwali",
		"action_type": "offers",
		"is_active":   "true",
		"start_date":  "2025-10-18",
		"end_date":    "2025-10-25",
		"start_time":  "09:00",
		"end_time":    "21:00",
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("POST", "/api/admin/banners", fields, map[string]string{"image": "diwali.jpg"}, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	if storage.UploadCallCount != 1 {
		t.Errorf("expected 1 upload, got %d", storage.UploadCallCount)
	}

	var saved models.Banner
	if err := db.Where("title = ?", "Diwali").First(&saved).Error; err != nil {
		t.Fatal(err)
	}
	if saved.DisplayOrder != 4 {
		t.Errorf("expected display order 4, got %d", saved.DisplayOrder)
	}
	if !saved.IsActive || saved.ImageFit != models.FitCover || saved.AutoSlideSeconds != models.DefaultAutoSlideSeconds {
		t.Errorf("unexpected defaults: %+v", saved)
	}
	if saved.ClickAction.Type != clickaction.Offers {
		t.Errorf("expected offers action, got %s", saved.ClickAction.Type)
	}
	if w := saved.ScheduleWindow(); w.StartTime != "09:00" || w.EndDate != "2025-10-25" {
		t.Errorf("unexpected window %+v", w)
	}

	events := pub.Events()
	if len(events) != 1 || events[0].Op != changefeed.Insert || events[0].ID != saved.ID.String() {
		t.Errorf("unexpected events %+v", events)
	}
}

func TestCreateBannerValidation(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)
	router, storage, _ := setupBannerRouter(db, nil)

	tests := []struct {
		name   string
		fields map[string]string
	}{
		{"unknown action", map[string]string{"action_type": "teleport"}},
		{"bad date", map[string]string{"start_date": "20-10-2025"}},
		{"bad time", map[string]string{"end_time": "9pm"}},
		{"inverted dates", map[string]string{"start_date": "2025-10-25", "end_date": "2025-10-20"}},
		{"slide too slow", map[string]string{"auto_slide_seconds": "600"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, multipartRequest("POST", "/api/admin/banners", tc.fields, map[string]string{"image": "x.jpg"}, token))
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
	if storage.UploadCallCount != 0 {
		t.Errorf("expected no uploads for invalid forms, got %d", storage.UploadCallCount)
	}
}

func TestCreateBannerKeepsInvertedTimeRange(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)
	router, _, _ := setupBannerRouter(db, nil)

	fields := map[string]string{"title": "Night", "is_active": "true", "start_time": "22:00", "end_time": "06:00"}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("POST", "/api/admin/banners", fields, map[string]string{"image": "n.jpg"}, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateBannerReplacesImage(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)
	b := seedBanner(db, "old", 0, true)
	router, storage, pub := setupBannerRouter(db, nil)

	fields := map[string]string{"title": "new", "is_active": "false", "image_fit": "contain"}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("PUT", fmt.Sprintf("/api/admin/banners/%s", b.ID), fields, map[string]string{"image": "new.jpg"}, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var saved models.Banner
	db.First(&saved, "id = ?", b.ID)
	if saved.Title != "new" || saved.IsActive || saved.ImageFit != models.FitContain {
		t.Errorf("update not applied: %+v", saved)
	}
	if len(storage.DeleteFileCalls) != 1 || storage.DeleteFileCalls[0] != "banners/old.jpg" {
		t.Errorf("expected old image to be deleted, got %v", storage.DeleteFileCalls)
	}
	if events := pub.Events(); len(events) != 1 || events[0].Op != changefeed.Update {
		t.Errorf("unexpected events %+v", events)
	}
}

func TestDeleteBanner(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)
	b := seedBanner(db, "gone", 0, true)
	router, storage, pub := setupBannerRouter(db, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", fmt.Sprintf("/api/admin/banners/%s", b.ID), nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var count int64
	db.Model(&models.Banner{}).Where("id = ?", b.ID).Count(&count)
	if count != 0 {
		t.Error("expected banner to be deleted")
	}
	if len(storage.DeleteFileCalls) != 1 {
		t.Errorf("expected image delete, got %v", storage.DeleteFileCalls)
	}
	if events := pub.Events(); len(events) != 1 || events[0].Op != changefeed.Delete {
		t.Errorf("unexpected events %+v", events)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", fmt.Sprintf("/api/admin/banners/%s", b.ID), nil, token))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 on second delete, got %d", w.Code)
	}
}

func TestSwapBanners(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)
	a := seedBanner(db, "a", 0, true)
	b := seedBanner(db, "b", 1, true)
	router, _, pub := setupBannerRouter(db, nil)

	body := map[string]string{"first_id": a.ID.String(), "second_id": b.ID.String()}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/admin/banners/swap", body, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var reloaded models.Banner
	db.First(&reloaded, "id = ?", a.ID)
	if reloaded.DisplayOrder != 1 {
		t.Errorf("expected a at position 1, got %d", reloaded.DisplayOrder)
	}
	if len(pub.Events()) != 2 {
		t.Errorf("expected 2 events, got %d", len(pub.Events()))
	}
}

func TestSwapBannersErrors(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)
	a := seedBanner(db, "a", 0, true)
	router, _, _ := setupBannerRouter(db, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/admin/banners/swap",
		map[string]string{"first_id": a.ID.String(), "second_id": a.ID.String()}, token))
	if w.Code != http.StatusBadRequest {
		t.Errorf("same row: expected 400, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/admin/banners/swap",
		map[string]string{"first_id": a.ID.String(), "second_id": uuid.NewString()}, token))
	if w.Code != http.StatusNotFound {
		t.Errorf("missing row: expected 404, got %d", w.Code)
	}
}
