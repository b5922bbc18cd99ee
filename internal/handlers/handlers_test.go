package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"memechat-backend/internal/models"
	"memechat-backend/internal/services"
)

// ─── Generate Handler Tests ───

type fakePipeline struct {
	result *models.GenerationResult
	err    error
	calls  int
}

func (f *fakePipeline) Generate(ctx context.Context, prompt string) (*models.GenerationResult, error) {
	f.calls++
	return f.result, f.err
}

func postGenerate(t *testing.T, h *GenerateHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Generate(rr, req)
	return rr
}

func TestGenerate_MissingPrompt(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body object", `{}`},
		{"empty prompt", `{"prompt":""}`},
		{"whitespace prompt", `{"prompt":"   "}`},
		{"invalid json", `{not json`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pipeline := &fakePipeline{}
			rr := postGenerate(t, NewGenerateHandler(pipeline), tc.body)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rr.Code)
			}
			if pipeline.calls != 0 {
				t.Errorf("Expected zero backend calls, got %d", pipeline.calls)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to parse error body: %v", err)
			}
			if resp.Error.Code != "VALIDATION_ERROR" {
				t.Errorf("Expected VALIDATION_ERROR, got %q", resp.Error.Code)
			}
		})
	}
}

func TestGenerate_Success(t *testing.T) {
	topic := "coffee shortage"
	pipeline := &fakePipeline{result: &models.GenerationResult{
		ImageURL:    "data:image/png;base64,eA==",
		Description: "This is me ☕",
		Prompt:      "Monday morning",
		Metadata: models.GenerationMetadata{
			UsedTrending:  true,
			TrendingTopic: &topic,
		},
	}}

	rr := postGenerate(t, NewGenerateHandler(pipeline), `{"prompt":"Monday morning"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var result models.GenerationResult
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to parse body: %v", err)
	}
	if result.ImageURL == "" || result.Description == "" {
		t.Error("Expected non-empty imageUrl and description")
	}
	if !result.Metadata.UsedTrending || *result.Metadata.TrendingTopic != "coffee shortage" {
		t.Errorf("Expected trending metadata to round-trip, got %+v", result.Metadata)
	}
}

func TestGenerate_MissingCredential(t *testing.T) {
	pipeline := &fakePipeline{err: services.ErrMissingAPIKey}
	rr := postGenerate(t, NewGenerateHandler(pipeline), `{"prompt":"hi there"}`)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rr.Code)
	}

	var resp models.ErrorResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Error.Code != "CONFIG_ERROR" {
		t.Errorf("Expected CONFIG_ERROR, got %q", resp.Error.Code)
	}
}

func TestGenerate_FatalFailure(t *testing.T) {
	pipeline := &fakePipeline{err: errors.New("image backend unreachable")}
	rr := postGenerate(t, NewGenerateHandler(pipeline), `{"prompt":"hi there"}`)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rr.Code)
	}

	var resp models.ErrorResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Error.Code != "GENERATION_FAILED" {
		t.Errorf("Expected GENERATION_FAILED, got %q", resp.Error.Code)
	}
}

// ─── Trending Handler Tests ───

type fakeTrendService struct {
	trends  []models.TrendItem
	sources []string
}

func (f *fakeTrendService) FetchTrends(ctx context.Context) ([]models.TrendItem, []string) {
	return f.trends, f.sources
}

func TestTrending_AlwaysOK(t *testing.T) {
	h := NewTrendingHandler(&fakeTrendService{
		trends: []models.TrendItem{
			{Topic: "Dogs hosting cooking shows", Description: "d", Category: "animals", Popularity: 9},
		},
		sources: []string{"fallback"},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trending", nil)
	rr := httptest.NewRecorder()
	h.Trending(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var resp models.TrendingResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to parse body: %v", err)
	}
	if len(resp.Trends) != 1 || resp.Trends[0].Topic != "Dogs hosting cooking shows" {
		t.Errorf("Unexpected trends: %+v", resp.Trends)
	}
	if resp.Timestamp == "" {
		t.Error("Expected timestamp to be set")
	}
	if len(resp.Sources) == 0 {
		t.Error("Expected sources to be reported")
	}
}

// ─── Diagnostic Handler Tests ───

type fakeProber struct {
	report *models.DiagnosticReport
	err    error
}

func (f *fakeProber) Probe(ctx context.Context) (*models.DiagnosticReport, error) {
	return f.report, f.err
}

func TestDiagnostic_NoProberConfigured(t *testing.T) {
	h := NewDiagnosticHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/diagnostic", nil)
	rr := httptest.NewRecorder()
	h.Diagnostic(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rr.Code)
	}
}

func TestDiagnostic_ReportsSearchCount(t *testing.T) {
	h := NewDiagnosticHandler(&fakeProber{report: &models.DiagnosticReport{
		Model:    "grok-3",
		Searches: 2,
		Preview:  "top trends...",
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/diagnostic", nil)
	rr := httptest.NewRecorder()
	h.Diagnostic(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var report models.DiagnosticReport
	if err := json.NewDecoder(rr.Body).Decode(&report); err != nil {
		t.Fatalf("Failed to parse body: %v", err)
	}
	if report.Searches != 2 {
		t.Errorf("Expected 2 searches, got %d", report.Searches)
	}
}

func TestDiagnostic_ProbeFailure(t *testing.T) {
	h := NewDiagnosticHandler(&fakeProber{err: errors.New("x.ai is down")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/diagnostic", nil)
	rr := httptest.NewRecorder()
	h.Diagnostic(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("Expected 502, got %d", rr.Code)
	}
}
