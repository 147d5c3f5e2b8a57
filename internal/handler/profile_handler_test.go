package handler

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
)

func registerProfileRoutes(router *gin.Engine, api *API) {
	group := router.Group("/api/admin")
	group.GET("/profile", api.GetOwnProfile)
	group.POST("/profile", api.SaveOwnProfile)
	group.GET("/profile/:id", api.GetProfile)
	group.PUT("/profile/:id", api.UpdateProfile)
	group.DELETE("/profile/:id", api.DeleteProfile)
	group.POST("/user", api.CreateUser)
	group.GET("/user/:id", api.GetUser)
	group.PUT("/user/:id", api.UpdateUser)
}

func TestProfileOwnership(t *testing.T) {
	gdb := setupHandlerTestDB(t)
	api := newTestAPI(t, gdb)
	owner := createTestUser(t, gdb, "owner@example.com")
	other := createTestUser(t, gdb, "other@example.com")

	ownerRouter := newTestRouter(owner.ID)
	registerProfileRoutes(ownerRouter, api)
	otherRouter := newTestRouter(other.ID)
	registerProfileRoutes(otherRouter, api)

	recorder := performJSON(ownerRouter, http.MethodGet, "/api/admin/profile", nil)
	if recorder.Code != http.StatusOK || recorder.Body.String() != "null" {
		t.Fatalf("expected 200 null before profile exists, got %d %q", recorder.Code, recorder.Body.String())
	}

	body := map[string]interface{}{"first_name": "Jane", "last_name": "Doe", "title": "Engineer"}
	recorder = performJSON(ownerRouter, http.MethodPost, "/api/admin/profile", body)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var profile map[string]interface{}
	decodeBody(t, recorder, &profile)
	if profile["full_name"] != "Jane Doe" {
		t.Fatalf("unexpected profile %#v", profile)
	}

	body["title"] = "Staff Engineer"
	recorder = performJSON(ownerRouter, http.MethodPost, "/api/admin/profile", body)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201 on second save, got %d", recorder.Code)
	}
	var saved map[string]interface{}
	decodeBody(t, recorder, &saved)
	if saved["id"] != profile["id"] || saved["title"] != "Staff Engineer" {
		t.Fatalf("expected in-place update, got %#v", saved)
	}

	recorder = performJSON(ownerRouter, http.MethodGet, "/api/admin/profile", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	path := "/api/admin/profile/" + strconv.Itoa(int(profile["id"].(float64)))
	recorder = performJSON(otherRouter, http.MethodGet, path, nil)
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign profile, got %d", recorder.Code)
	}
	var payload map[string]string
	decodeBody(t, recorder, &payload)
	if payload["error"] != "Unauthorized" {
		t.Fatalf("unexpected error body %#v", payload)
	}

	// 所有权错误优先于字段校验
	if recorder := performJSON(otherRouter, http.MethodPut, path, map[string]interface{}{}); recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403 before validation, got %d", recorder.Code)
	}
	if recorder := performJSON(otherRouter, http.MethodDelete, path, nil); recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403 on foreign delete, got %d", recorder.Code)
	}

	if recorder := performJSON(ownerRouter, http.MethodPut, path, map[string]interface{}{}); recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for owner with empty body, got %d", recorder.Code)
	}
	if recorder := performJSON(ownerRouter, http.MethodDelete, path, nil); recorder.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", recorder.Code)
	}
}

func TestUserEndpointsOnlyExposeSelf(t *testing.T) {
	gdb := setupHandlerTestDB(t)
	api := newTestAPI(t, gdb)
	owner := createTestUser(t, gdb, "owner@example.com")
	other := createTestUser(t, gdb, "other@example.com")

	router := newTestRouter(owner.ID)
	registerProfileRoutes(router, api)

	if recorder := performJSON(router, http.MethodGet, "/api/admin/user/"+strconv.Itoa(int(other.ID)), nil); recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", recorder.Code)
	}

	recorder := performJSON(router, http.MethodPut, "/api/admin/user/"+strconv.Itoa(int(owner.ID)), map[string]interface{}{
		"name":  "Renamed",
		"email": "other@example.com",
	})
	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for taken email, got %d", recorder.Code)
	}

	recorder = performJSON(router, http.MethodPut, "/api/admin/user/"+strconv.Itoa(int(owner.ID)), map[string]interface{}{
		"name":  "Renamed",
		"email": "owner@example.com",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
}

func TestCreateUser(t *testing.T) {
	gdb := setupHandlerTestDB(t)
	api := newTestAPI(t, gdb)
	owner := createTestUser(t, gdb, "owner@example.com")

	router := newTestRouter(owner.ID)
	registerProfileRoutes(router, api)

	body := map[string]interface{}{
		"name":     "New Admin",
		"email":    " New@Example.com ",
		"password": "secret-password",
	}
	recorder := performJSON(router, http.MethodPost, "/api/admin/user", body)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var created map[string]interface{}
	decodeBody(t, recorder, &created)
	if created["email"] != "new@example.com" || created["name"] != "New Admin" {
		t.Fatalf("unexpected user payload %#v", created)
	}
	if _, leaked := created["password"]; leaked {
		t.Fatalf("password must not be exposed: %#v", created)
	}

	if recorder := performJSON(router, http.MethodPost, "/api/admin/user", body); recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for duplicate email, got %d", recorder.Code)
	}
	if recorder := performJSON(router, http.MethodPost, "/api/admin/user", map[string]interface{}{"name": "x"}); recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for missing fields, got %d", recorder.Code)
	}
}
