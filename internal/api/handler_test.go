package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/amish-gaur/DataPriv/internal/analyzer"
	"github.com/amish-gaur/DataPriv/internal/types"
)

// mockAnalyzer implements Analyzer for testing
type mockAnalyzer struct {
	mu       sync.Mutex
	requests []types.AnalysisRequest
	result   *types.AnalysisResult
	err      error
	cached   map[string]*types.AnalysisResult
	deadline bool
}

func newMockAnalyzer() *mockAnalyzer {
	insights := types.NewHeuristicInsights()

	return &mockAnalyzer{
		result: &types.AnalysisResult{
			Domain:    "example.com",
			SourceURL: "https://example.com/privacy",
			Summary: types.PolicySummary{
				DataCollected: []string{"email"},
				Purposes:      []string{},
				Sharing:       "unspecified",
				Retention:     "unspecified",
			},
			RiskScore: 35,
			Insights:  insights,
		},
		cached: map[string]*types.AnalysisResult{},
	}
}

func (m *mockAnalyzer) Analyze(ctx context.Context, req types.AnalysisRequest) (*types.AnalysisResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if _, ok := ctx.Deadline(); ok {
		m.deadline = true
	}

	if m.err != nil {
		return nil, m.err
	}

	return m.result, nil
}

func (m *mockAnalyzer) Cached(_ context.Context, domain string) (*types.AnalysisResult, error) {
	if domain == "" || strings.Contains(domain, " ") {
		return nil, analyzer.ErrInvalidDomain
	}

	result, ok := m.cached[domain]
	if !ok {
		return nil, analyzer.ErrNotCached
	}

	return result, nil
}

// mockNotifier implements Notifier for testing
type mockNotifier struct {
	calls chan *types.AnalysisResult
	err   error
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{calls: make(chan *types.AnalysisResult, 1)}
}

func (m *mockNotifier) NotifyHighRisk(_ context.Context, result *types.AnalysisResult) (bool, error) {
	m.calls <- result
	return m.err == nil, m.err
}

func newTestRouter(a Analyzer, n Notifier) http.Handler {
	return NewRouter(RouterConfig{
		Analyzer:       a,
		Notifier:       n,
		MaxBodySize:    1024,
		AnalyzeTimeout: 30 * time.Second,
	})
}

func postSummarize(handler http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/summarize", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	return w
}

func decodeAnalysisResponse(t *testing.T, w *httptest.ResponseRecorder) AnalysisResponse {
	t.Helper()

	var response AnalysisResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	return response
}

func TestHandleHealth(t *testing.T) {
	handler := newTestRouter(newMockAnalyzer(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %s", response["status"])
	}

	if response["service"] != "radar" {
		t.Errorf("Expected service 'radar', got %s", response["service"])
	}

	if response["timestamp"] == "" {
		t.Error("Expected non-empty timestamp")
	}
}

func TestHandleSummarize_ValidDomain(t *testing.T) {
	mock := newMockAnalyzer()
	handler := newTestRouter(mock, nil)

	w := postSummarize(handler, `{"domain":"example.com","candidateUrls":["https://example.com/privacy"]}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	response := decodeAnalysisResponse(t, w)

	if !response.Success {
		t.Error("Expected success to be true")
	}

	if response.Data == nil || response.Data.Domain != "example.com" {
		t.Fatalf("Expected result for example.com, got %+v", response.Data)
	}

	if len(mock.requests) != 1 || len(mock.requests[0].CandidateURLs) != 1 {
		t.Errorf("Expected candidate URLs to reach the analyzer, got %+v", mock.requests)
	}

	if !mock.deadline {
		t.Error("Expected analysis context to carry a deadline")
	}
}

func TestHandleSummarize_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{name: "malformed json", body: `{"domain":`, code: errCodeInvalidRequest},
		{name: "unknown field", body: `{"domain":"example.com","extra":true}`, code: errCodeInvalidRequest},
		{name: "multiple objects", body: `{"domain":"example.com"}{"domain":"other.com"}`, code: errCodeInvalidRequest},
		{name: "missing domain", body: `{}`, code: errCodeValidation},
		{name: "blank domain", body: `{"domain":"   "}`, code: errCodeValidation},
		{name: "body too large", body: `{"domain":"` + strings.Repeat("a", 2048) + `.com"}`, code: errCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockAnalyzer()
			handler := newTestRouter(mock, nil)

			w := postSummarize(handler, tt.body)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", w.Code)
			}

			response := decodeAnalysisResponse(t, w)

			if response.Success {
				t.Error("Expected success to be false")
			}

			if response.Error == nil || response.Error.Code != tt.code {
				t.Errorf("Expected error code %s, got %+v", tt.code, response.Error)
			}

			if len(mock.requests) != 0 {
				t.Error("Expected analyzer not to be called")
			}
		})
	}
}

func TestHandleSummarize_AnalyzerInvalidDomain(t *testing.T) {
	mock := newMockAnalyzer()
	mock.err = analyzer.ErrInvalidDomain
	handler := newTestRouter(mock, nil)

	w := postSummarize(handler, `{"domain":"example.com"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestHandleSummarize_AnalyzerError(t *testing.T) {
	mock := newMockAnalyzer()
	mock.err = errors.New("boom")
	handler := newTestRouter(mock, nil)

	w := postSummarize(handler, `{"domain":"example.com"}`)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}

	response := decodeAnalysisResponse(t, w)
	if response.Error == nil || response.Error.Code != errCodeInternal {
		t.Errorf("Expected internal error code, got %+v", response.Error)
	}

	if strings.Contains(response.Error.Message, "boom") {
		t.Error("Expected internal error details not to leak")
	}
}

func TestHandleSummarize_AnalyzerTimeout(t *testing.T) {
	mock := newMockAnalyzer()
	mock.err = fmt.Errorf("analyzing example.com: %w", context.DeadlineExceeded)
	notifier := newMockNotifier()
	handler := newTestRouter(mock, notifier)

	w := postSummarize(handler, `{"domain":"example.com"}`)

	if w.Code != http.StatusGatewayTimeout {
		t.Errorf("Expected status 504, got %d", w.Code)
	}

	response := decodeAnalysisResponse(t, w)
	if response.Success || response.Data != nil {
		t.Errorf("Expected no result for a timed out analysis, got %+v", response.Data)
	}

	if response.Error == nil || response.Error.Code != errCodeTimeout {
		t.Errorf("Expected timeout error code, got %+v", response.Error)
	}

	select {
	case <-notifier.calls:
		t.Error("Expected no notification for a timed out analysis")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHandleSummarize_NotifiesInBackground(t *testing.T) {
	mock := newMockAnalyzer()
	notifier := newMockNotifier()
	handler := newTestRouter(mock, notifier)

	w := postSummarize(handler, `{"domain":"example.com"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	select {
	case result := <-notifier.calls:
		if result.Domain != "example.com" {
			t.Errorf("Expected notification for example.com, got %s", result.Domain)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected notifier to be called")
	}
}

func TestHandleSummarize_NotifierFailureIgnored(t *testing.T) {
	notifier := newMockNotifier()
	notifier.err = errors.New("webhook down")
	handler := newTestRouter(newMockAnalyzer(), notifier)

	w := postSummarize(handler, `{"domain":"example.com"}`)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	select {
	case <-notifier.calls:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected notifier to be called")
	}
}

func TestHandleSite(t *testing.T) {
	mock := newMockAnalyzer()
	cached := *mock.result
	cached.Insights.DataSource = types.DataSourceCached
	mock.cached["example.com"] = &cached

	handler := newTestRouter(mock, nil)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{name: "cached", path: "/api/sites/example.com", status: http.StatusOK},
		{name: "not cached", path: "/api/sites/other.com", status: http.StatusNotFound},
		{name: "invalid", path: "/api/sites/bad%20domain", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("Expected status %d, got %d", tt.status, w.Code)
			}

			response := decodeAnalysisResponse(t, w)

			if tt.status == http.StatusOK {
				if response.Data == nil || response.Data.Insights.DataSource != types.DataSourceCached {
					t.Errorf("Expected cached result, got %+v", response.Data)
				}

				return
			}

			if response.Error == nil {
				t.Error("Expected error payload")
			}
		})
	}
}
