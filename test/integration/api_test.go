package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/fuel-calculator/internal/api"
	"github.com/eugenenazirov/fuel-calculator/internal/fuel"
	"github.com/eugenenazirov/fuel-calculator/internal/storage"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	store := storage.NewMemoryStorage()
	handler := api.NewHandler(fuel.New(), store)
	logger := zaptest.NewLogger(t)
	return api.NewRouter(handler, logger)
}

func performRequest(t *testing.T, handler http.Handler, method, target string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestIntegrationFlow(t *testing.T) {
	handler := newRouter(t)
	jsonHeaders := map[string]string{"Content-Type": "application/json"}

	rec := performRequest(t, handler, http.MethodGet, "/api/health", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from health, got %d", rec.Code)
	}

	rec = performRequest(t, handler, http.MethodPost, "/api/fuel", nil, jsonHeaders)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 before a manifest is stored, got %d", rec.Code)
	}

	payload, _ := json.Marshal(map[string]any{"masses": []int{12, 14, 1969, 100756}})
	rec = performRequest(t, handler, http.MethodPut, "/api/modules", payload, jsonHeaders)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from manifest update, got %d", rec.Code)
	}

	rec = performRequest(t, handler, http.MethodPost, "/api/fuel", nil, jsonHeaders)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from fuel, got %d", rec.Code)
	}

	var response struct {
		TotalFuel int `json:"totalFuel"`
		Modules   []struct {
			TotalFuel int `json:"totalFuel"`
		} `json:"modules"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.TotalFuel != 51316 {
		t.Fatalf("unexpected total fuel %d", response.TotalFuel)
	}
	if len(response.Modules) != 4 || response.Modules[2].TotalFuel != 966 {
		t.Fatalf("unexpected module breakdown %+v", response.Modules)
	}

	body, _ := json.Marshal(map[string]any{"masses": []int{14}})
	rec = performRequest(t, handler, http.MethodPost, "/api/fuel", body, jsonHeaders)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from fuel with explicit masses, got %d", rec.Code)
	}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.TotalFuel != 2 {
		t.Fatalf("expected explicit masses to bypass the manifest, got %d", response.TotalFuel)
	}
}
