package progress

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "guest:abc")
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestUpdateThenGetProgress(t *testing.T) {
	router := newTestRouter(NewService())

	body, _ := json.Marshal(map[string]any{"action": "quiz_complete", "xp_earned": 80, "details": map[string]any{"score": 8}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/progress/update", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/progress", nil))
	var got Progress
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.XP != 80 || got.QuizzesTaken != 1 || got.TotalScore != 8 || got.Streak != 1 {
		t.Fatalf("unexpected progress %+v", got)
	}
}

func TestUpdateRejectsUnknownAction(t *testing.T) {
	router := newTestRouter(NewService())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/progress/update", bytes.NewReader([]byte(`{"action":"nap","xp_earned":5}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestRecommendationsDefaultsForNewUser(t *testing.T) {
	router := newTestRouter(NewService())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var report Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(report.Recommendations) == 0 || report.Recommendations[0].Title != "Coding Needs Attention" {
		t.Fatalf("unexpected report %+v", report)
	}
}
