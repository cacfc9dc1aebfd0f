package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	appbusiness "github.com/lehi10/tuagenda-sub000/internal/application/business"
	appuser "github.com/lehi10/tuagenda-sub000/internal/application/user"
	"github.com/lehi10/tuagenda-sub000/internal/infrastructure/http/handlers"
	"github.com/lehi10/tuagenda-sub000/internal/infrastructure/http/middleware"
	"github.com/lehi10/tuagenda-sub000/internal/infrastructure/persistence/memory"
	"github.com/lehi10/tuagenda-sub000/internal/infrastructure/queue"
)

const testAdminSecret = "test-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := zerolog.Nop()
	businesses := memory.NewBusinessRepository()
	users := memory.NewUserRepository()
	events := queue.NewNoopEnqueuer()

	businessHandler := handlers.NewBusinessHandler(
		appbusiness.NewCreateBusiness(businesses, events, log),
		appbusiness.NewGetBusiness(businesses, log),
		appbusiness.NewUpdateBusiness(businesses, events, log),
		appbusiness.NewDeleteBusiness(businesses, events, log),
		appbusiness.NewListBusinesses(businesses, log),
		log,
	)
	usersHandler := handlers.NewUsersHandler(
		appuser.NewCreateUser(users, events, log),
		appuser.NewGetUser(users, log),
		appuser.NewUpdateUser(users, events, log),
		appuser.NewListUsers(users, log),
		log,
	)

	router := NewRouter(RouterConfig{
		BusinessHandler: businessHandler,
		UsersHandler:    usersHandler,
		RequireAdmin:    middleware.RequireAdminSecret(testAdminSecret),
		Log:             log,
		APIVersion:      "v1",
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, body string, admin bool) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set("X-Tuagenda-Admin-Secret", testAdminSecret)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	defer resp.Body.Close()
	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

const businessBody = `{
	"slug": "acme",
	"title": "Acme Salon",
	"email": "hello@acme.example",
	"phone": "+51 1 555 0100",
	"address": "Av. Principal 123",
	"city": "Lima",
	"country": "PE",
	"time_zone": "America/Lima",
	"locale": "es-PE",
	"currency": "PEN"
}`

func TestBusinessLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	resp, created := doJSON(t, http.MethodPost, srv.URL+"/businesses", businessBody, true)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, body %v", resp.StatusCode, created)
	}
	if created["slug"] != "acme" || created["status"] != "active" {
		t.Fatalf("created = %v", created)
	}
	id := created["id"].(float64)
	if id <= 0 {
		t.Fatalf("id = %v", id)
	}

	resp, got := doJSON(t, http.MethodGet, srv.URL+"/businesses/1", "", false)
	if resp.StatusCode != http.StatusOK || got["title"] != "Acme Salon" {
		t.Fatalf("get status = %d, body %v", resp.StatusCode, got)
	}

	resp, bySlug := doJSON(t, http.MethodGet, srv.URL+"/businesses/slug/acme", "", false)
	if resp.StatusCode != http.StatusOK || bySlug["id"].(float64) != id {
		t.Fatalf("get by slug status = %d, body %v", resp.StatusCode, bySlug)
	}

	resp, updated := doJSON(t, http.MethodPatch, srv.URL+"/businesses/1", `{"title":"Acme Spa"}`, true)
	if resp.StatusCode != http.StatusOK || updated["title"] != "Acme Spa" {
		t.Fatalf("update status = %d, body %v", resp.StatusCode, updated)
	}
	if updated["city"] != "Lima" {
		t.Fatalf("untouched field changed: %v", updated["city"])
	}

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/businesses/1", "", true)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/businesses/1", "", false)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", resp.StatusCode)
	}
	if body["error"] != "Business not found" || body["code"] != "not_found" {
		t.Fatalf("not-found body = %v", body)
	}
}

func TestMutatingRoutesRequireAdminSecret(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/businesses", businessBody, false)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, body %v", resp.StatusCode, body)
	}

	// Reads stay open.
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/businesses", "", false)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
}

func TestCreateBusinessValidationAndConflict(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/businesses", `{"title":"No Slug"}`, true)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["error"] != "slug is required" {
		t.Fatalf("validation body = %v", body)
	}

	if resp, _ := doJSON(t, http.MethodPost, srv.URL+"/businesses", businessBody, true); resp.StatusCode != http.StatusCreated {
		t.Fatalf("first create status = %d", resp.StatusCode)
	}
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/businesses", businessBody, true)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("second create status = %d", resp.StatusCode)
	}
	if msg, _ := body["error"].(string); !strings.Contains(msg, "already exists") {
		t.Fatalf("conflict body = %v", body)
	}
}

func TestCreateUserIdempotentOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	userBody := `{
		"id": "usr-abc",
		"email": "maria@example.com",
		"first_name": "Maria",
		"last_name": "Quispe"
	}`

	resp, first := doJSON(t, http.MethodPost, srv.URL+"/users", userBody, true)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first create status = %d, body %v", resp.StatusCode, first)
	}
	if first["status"] != "visible" || first["role"] != "customer" {
		t.Fatalf("defaults = %v", first)
	}

	resp, second := doJSON(t, http.MethodPost, srv.URL+"/users", userBody, true)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("repeat create status = %d", resp.StatusCode)
	}
	if second["id"] != "usr-abc" {
		t.Fatalf("repeat body = %v", second)
	}
}

func TestUpdateUserGuardedTransitionOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, http.MethodPost, srv.URL+"/users", `{
		"id": "usr-abc",
		"email": "maria@example.com",
		"first_name": "Maria",
		"last_name": "Quispe"
	}`, true)

	resp, _ := doJSON(t, http.MethodPatch, srv.URL+"/users/usr-abc", `{"status":"blocked"}`, true)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("block status = %d", resp.StatusCode)
	}
	resp, body := doJSON(t, http.MethodPatch, srv.URL+"/users/usr-abc", `{"status":"blocked"}`, true)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("double block status = %d", resp.StatusCode)
	}
	if body["error"] != "user is already blocked" {
		t.Fatalf("double block body = %v", body)
	}
}

func TestListUsersPaginationOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	for _, u := range []struct{ id, email, first string }{
		{"usr-1", "maria@example.com", "Maria"},
		{"usr-2", "jose@example.com", "Jose"},
		{"usr-3", "maria.flores@example.com", "Maria"},
	} {
		body := `{"id":"` + u.id + `","email":"` + u.email + `","first_name":"` + u.first + `","last_name":"Quispe"}`
		if resp, b := doJSON(t, http.MethodPost, srv.URL+"/users", body, true); resp.StatusCode != http.StatusCreated {
			t.Fatalf("seed %s status = %d, body %v", u.id, resp.StatusCode, b)
		}
	}

	resp, byEmail := doJSON(t, http.MethodGet, srv.URL+"/users/by-email?email=jose@example.com", "", false)
	if resp.StatusCode != http.StatusOK || byEmail["id"] != "usr-2" {
		t.Fatalf("by-email status = %d, body %v", resp.StatusCode, byEmail)
	}

	resp, byIDs := doJSON(t, http.MethodGet, srv.URL+"/users?id=usr-1&id=usr-3", "", false)
	if resp.StatusCode != http.StatusOK || byIDs["total"].(float64) != 2 {
		t.Fatalf("by-ids status = %d, body %v", resp.StatusCode, byIDs)
	}

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/users?search=Maria&limit=1", "", false)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	if body["total"].(float64) != 2 {
		t.Fatalf("total = %v", body["total"])
	}
	if items := body["users"].([]interface{}); len(items) != 1 {
		t.Fatalf("page size = %d", len(items))
	}
}
