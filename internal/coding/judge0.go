package coding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"elevate-backend/internal/shared/metrics"
)

// Runner executes source code and returns its raw result.
type Runner interface {
	Run(ctx context.Context, in ExecuteInput) (any, error)
	Name() string
}

// Judge0 runs code on a Judge0 CE instance in synchronous mode.
type Judge0 struct {
	BaseURL string
	Key     string
	Host    string
	HTTP    *http.Client
}

// NewJudge0 builds a client with the given request timeout.
func NewJudge0(baseURL, key, host string, timeout time.Duration) *Judge0 {
	if host == "" {
		host = hostOf(baseURL)
	}
	return &Judge0{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Key:     key,
		Host:    host,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Name returns "judge0".
func (j *Judge0) Name() string { return "judge0" }

// Run posts one submission and waits for its result.
func (j *Judge0) Run(ctx context.Context, in ExecuteInput) (any, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	url := j.BaseURL + "/submissions?base64_encoded=false&wait=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-RapidAPI-Key", j.Key)
	req.Header.Set("X-RapidAPI-Host", j.Host)

	resp, err := j.HTTP.Do(req)
	if err != nil {
		metrics.IncCodeRun(j.Name(), "error")
		return nil, fmt.Errorf("judge0 request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		metrics.IncCodeRun(j.Name(), "error")
		return nil, fmt.Errorf("judge0 read: %w", err)
	}
	if resp.StatusCode >= 300 {
		metrics.IncCodeRun(j.Name(), "error")
		return nil, fmt.Errorf("judge0 status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	metrics.IncCodeRun(j.Name(), "ok")
	return json.RawMessage(body), nil
}

func hostOf(baseURL string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(baseURL, "https://"), "http://")
	host, _, _ = strings.Cut(host, "/")
	return host
}
