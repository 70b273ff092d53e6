package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"railspace_backend/internal/insights/service"
	"railspace_backend/platform/ai/gemini"
	"railspace_backend/platform/logger"
	"railspace_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type cannedGenerator string

func (g cannedGenerator) GenerateJSON(_ context.Context, _ gemini.Request, out any) error {
	return json.Unmarshal([]byte(g), out)
}

func newRouter(gen service.Generator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	val := validator.New()
	h := New(service.New(gen, val, logger.Discard()), val)

	r := gin.New()
	r.POST("/maintenance", h.PredictMaintenance)
	return r
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/maintenance", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	return rec
}

func TestPredictMaintenance(t *testing.T) {
	valid := `{"warehouseId": "WH-7", "sensorData": "humidity 91%"}`
	gen := cannedGenerator(`{"maintenanceRequired": true, "urgency": "High", "recommendation": "inspect roof"}`)

	tests := []struct {
		name       string
		gen        service.Generator
		body       string
		wantStatus int
		wantBody   string
	}{
		{name: "ok", gen: gen, body: valid, wantStatus: http.StatusOK, wantBody: `"urgency":"High"`},
		{name: "malformed json", gen: gen, body: `{`, wantStatus: http.StatusBadRequest, wantBody: msgInvalidRequest},
		{name: "missing field", gen: gen, body: `{"warehouseId": "WH-7"}`, wantStatus: http.StatusBadRequest, wantBody: msgValidationFailed},
		{name: "unconfigured", gen: nil, body: valid, wantStatus: http.StatusServiceUnavailable, wantBody: "not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(newRouter(tt.gen), tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Fatalf("expected body to contain %q, got %s", tt.wantBody, rec.Body.String())
			}
		})
	}
}
