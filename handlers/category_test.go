package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"camstore-backend/models"

	"github.com/google/uuid"
)

func TestGetCategoriesOrdered(t *testing.T) {
	db := freshDB()
	router := setupCategoryRouter(db)

	nvr := seedCategory(db, "NVR", "nvr")
	db.Model(&nvr).Update("display_order", 2)
	seedCategory(db, "Dome Cameras", "dome-cameras")
	seedCategory(db, "Bullet Cameras", "bullet-cameras")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/categories", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	result := parseResponseArray(w)
	if len(result) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(result))
	}
	want := []string{"Bullet Cameras", "Dome Cameras", "NVR"}
	for i, name := range want {
		if got := result[i].(map[string]interface{})["name"]; got != name {
			t.Errorf("position %d: expected %s, got %v", i, name, got)
		}
	}
}

func TestGetCategoryBySlugWithProducts(t *testing.T) {
	db := freshDB()
	router := setupCategoryRouter(db)

	cat := seedCategory(db, "Dome Cameras", "dome-cameras")
	seedProduct(db, "2MP Dome", cat.ID, 1899)
	seedProduct(db, "4MP Dome", cat.ID, 2899)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/categories/dome-cameras", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	products, ok := parseResponse(w)["products"].([]interface{})
	if !ok || len(products) != 2 {
		t.Errorf("expected 2 preloaded products, got %v", parseResponse(w)["products"])
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/categories/unknown", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestCreateCategoryGeneratesSlug(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)
	router := setupCategoryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/admin/categories", map[string]string{"name": "  PTZ & Speed Domes "}, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["slug"] != "ptz-speed-domes" || resp["name"] != "PTZ & Speed Domes" {
		t.Errorf("unexpected category %v", resp)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/admin/categories", map[string]string{"name": "PTZ & Speed Domes"}, token))
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 on duplicate, got %d", w.Code)
	}
}

func TestCreateCategoryRejectsSymbolsOnly(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)
	router := setupCategoryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/admin/categories", map[string]string{"name": "!!!"}, token))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestUpdateCategory(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)
	cat := seedCategory(db, "Domes", "domes")
	router := setupCategoryRouter(db)

	body := map[string]interface{}{"name": "Dome Cameras", "slug": "dome-cameras", "display_order": 1}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", fmt.Sprintf("/api/admin/categories/%s", cat.ID), body, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var saved models.Category
	db.First(&saved, "id = ?", cat.ID)
	if saved.Slug != "dome-cameras" || saved.DisplayOrder != 1 {
		t.Errorf("update not applied: %+v", saved)
	}
}

func TestDeleteCategoryWithProductsRejected(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)
	cat := seedCategory(db, "Domes", "domes")
	seedProduct(db, "Dome", cat.ID, 999)
	router := setupCategoryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", fmt.Sprintf("/api/admin/categories/%s", cat.ID), nil, token))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
	if parseResponse(w)["product_count"].(float64) != 1 {
		t.Errorf("expected product_count 1, got %v", parseResponse(w)["product_count"])
	}
}

func TestDeleteCategory(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)
	cat := seedCategory(db, "Empty", "empty")
	router := setupCategoryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", fmt.Sprintf("/api/admin/categories/%s", cat.ID), nil, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", fmt.Sprintf("/api/admin/categories/%s", uuid.New()), nil, token))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Dome Cameras":    "dome-cameras",
		"  4K / 8MP  ":    "4k-8mp",
		"Wi-Fi Cameras!!": "wi-fi-cameras",
		"":                "",
	}
	for in, want := range tests {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
