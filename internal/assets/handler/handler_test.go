package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"railspace_backend/internal/assets/domain"
	"railspace_backend/internal/assets/repository"
	"railspace_backend/internal/assets/service"
	"railspace_backend/internal/events"
	"railspace_backend/platform/logger"
	"railspace_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type stubReader struct {
	records []domain.Record
	err     error
}

func (r stubReader) ListRecords(context.Context) ([]domain.Record, error) { return r.records, r.err }

func (r stubReader) GetRecord(_ context.Context, id string) (domain.Record, error) {
	for _, rec := range r.records {
		if rec["id"] == id {
			return rec, nil
		}
	}
	return nil, r.err
}

func newRouter(reader repository.Reader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.Discard()
	svc := service.New(reader, nil, events.NewInMemoryBus(log), time.Second, log)
	h := New(svc, validator.New())

	r := gin.New()
	r.GET("/assets", h.List)
	r.GET("/assets/:id", h.Get)
	r.POST("/admin/assets", h.Create)
	return r
}

func fallbackReader(t *testing.T) repository.Reader {
	t.Helper()
	fb, err := repository.NewFallback()
	if err != nil {
		t.Fatalf("fallback: %v", err)
	}
	return fb
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestListReturnsData(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "all", query: "", want: 3},
		{name: "city", query: "?city=delhi", want: 1},
		{name: "type", query: "?type=Retail", want: 1},
		{name: "rent", query: "?maxRent=50000", want: 2},
		{name: "proximity", query: "?nearLat=28.6139&nearLng=77.2090&maxDistance=30", want: 1},
		{name: "partial proximity ignored", query: "?nearLat=28.6139&maxDistance=30", want: 3},
		{name: "negative radius excludes all", query: "?nearLat=28.6139&nearLng=77.2090&maxDistance=-1", want: 0},
		{name: "out of range center excludes all", query: "?nearLat=120&nearLng=77.2090&maxDistance=50", want: 0},
		{name: "non-finite radius ignored", query: "?nearLat=28.6139&nearLng=77.2090&maxDistance=NaN", want: 3},
		{name: "undeclared windows always available", query: "?from=2024-08-15&to=2024-09-15", want: 3},
		{name: "malformed number ignored", query: "?minSize=big", want: 3},
		{name: "no match", query: "?type=Godown", want: 0},
	}

	router := newRouter(fallbackReader(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets"+tt.query, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			var assets []domain.Asset
			if err := json.Unmarshal(decode(t, rec)["data"], &assets); err != nil {
				t.Fatalf("decode data: %v", err)
			}
			if assets == nil || len(assets) != tt.want {
				t.Fatalf("expected %d assets, got %v", tt.want, assets)
			}
		})
	}
}

func TestListStoreFailureIs500(t *testing.T) {
	router := newRouter(stubReader{err: errors.New("dial tcp: connection refused")})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := decode(t, rec)
	if _, ok := body["data"]; ok {
		t.Fatalf("expected no data on failure, got %s", rec.Body.String())
	}
	var msg string
	if err := json.Unmarshal(body["error"], &msg); err != nil || msg == "" {
		t.Fatalf("expected error message, got %s", rec.Body.String())
	}
	if strings.Contains(msg, "connection refused") {
		t.Fatalf("driver detail leaked: %q", msg)
	}
}

func TestGet(t *testing.T) {
	router := newRouter(fallbackReader(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/AS-3", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/AS-404", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreateValidation(t *testing.T) {
	router := newRouter(fallbackReader(t))

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "malformed json", body: `{"name":`, want: http.StatusBadRequest},
		{name: "missing fields", body: `{"name":"Yard"}`, want: http.StatusBadRequest},
		{name: "bad geolocation", body: `{"name":"Yard","type":"Land","location":"Pune","size":10,"geoLocation":"north"}`, want: http.StatusBadRequest},
		{name: "no store", body: `{"name":"Yard","type":"Land","location":"Pune","size":10,"amenities":"Water, Power"}`, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin/assets", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}
