package coding

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"elevate-backend/internal/llm"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "guest:coder")
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestCodeExecuteReturnsRenderedOutput(t *testing.T) {
	client := llm.NewMockClient(llm.MockResponse{Text: `{"stdout":"42","status":{"description":"Accepted"}}`})
	router := newTestRouter(NewService(NewMemoryRepo(), &Simulator{LLM: client}, client, nil, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/code/execute", strings.NewReader(`{"source_code":"print(42)","language_id":71}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var res RunResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !res.Simulated || !strings.Contains(res.Output, "Output:\n42") {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestCodeExecuteUpstreamFailureIs502(t *testing.T) {
	router := newTestRouter(NewService(NewMemoryRepo(), failingRunner{}, llm.NewMockClient(), nil, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/code/execute", strings.NewReader(`{"source_code":"x","language_id":71}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
}

func TestCodeEvaluateAndHistory(t *testing.T) {
	client := llm.NewMockClient(llm.MockResponse{Text: "```json\n{\"roadmap\":\"learn DP\"}\n```"})
	router := newTestRouter(NewService(NewMemoryRepo(), &Simulator{LLM: client}, client, nil, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/code/evaluate", strings.NewReader(`{"code":"int main(){}","language":"C++"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		ID         string         `json:"id"`
		Evaluation map[string]any `json:"evaluation"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.ID == "" || body.Evaluation["roadmap"] != "learn DP" {
		t.Fatalf("unexpected body %+v", body)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/history/code", nil))
	var subs []Submission
	if err := json.NewDecoder(resp.Body).Decode(&subs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(subs) != 1 || subs[0].Language != "C++" {
		t.Fatalf("unexpected history %+v", subs)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/history/code/"+body.ID+"/source", nil))
	if resp.Code != http.StatusOK || resp.Body.String() != "int main(){}" {
		t.Fatalf("unexpected source response %d %q", resp.Code, resp.Body.String())
	}
	if got := resp.Header().Get("Content-Disposition"); !strings.Contains(got, "solution.cpp") {
		t.Fatalf("unexpected content disposition %q", got)
	}
}

func TestCodeEvaluateRequiresCode(t *testing.T) {
	router := newTestRouter(NewService(NewMemoryRepo(), failingRunner{}, llm.NewMockClient(), nil, nil))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/code/evaluate", strings.NewReader(`{"language":"Python"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
