package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"elevate-backend/internal/shared/auth"
	"elevate-backend/internal/shared/server/middleware"
)

func newTestRouter(t *testing.T) (*gin.Engine, *auth.Issuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	iss, err := auth.NewIssuer("test-secret", "test")
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	r := gin.New()
	r.Use(middleware.Auth(iss))
	NewHandler(NewService(NewMemoryRepo(), iss)).RegisterRoutes(r.Group("/api/v1"))
	return r, iss
}

func syncUser(t *testing.T, r *gin.Engine, body string) Session {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/user/sync", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var s Session
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return s
}

func TestSyncReturnsSameUserForSameEmail(t *testing.T) {
	r, iss := newTestRouter(t)

	first := syncUser(t, r, `{"name":"Asha","email":"asha@example.com"}`)
	second := syncUser(t, r, `{"name":"Someone Else","email":"ASHA@example.com"}`)

	if first.UserID == "" || first.UserID != second.UserID {
		t.Fatalf("expected stable user id, got %q and %q", first.UserID, second.UserID)
	}
	if second.Name != "Asha" {
		t.Fatalf("expected original name, got %q", second.Name)
	}
	claims, err := iss.Verify(second.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != first.UserID || claims.Email != "asha@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestSyncRejectsInvalidEmail(t *testing.T) {
	r, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/user/sync", strings.NewReader(`{"name":"x","email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestMeWithTokenAndGuest(t *testing.T) {
	r, _ := newTestRouter(t)
	session := syncUser(t, r, `{"email":"ravi@example.com"}`)
	if session.Name != "ravi" {
		t.Fatalf("expected name from email, got %q", session.Name)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body["userId"] != session.UserID || body["email"] != "ravi@example.com" || body["guest"] != false {
		t.Fatalf("unexpected body %v", body)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("X-Guest-Id", "abc")
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	body = map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if resp.Code != http.StatusOK || body["userId"] != "guest:abc" || body["guest"] != true {
		t.Fatalf("unexpected guest response %d %v", resp.Code, body)
	}
}
