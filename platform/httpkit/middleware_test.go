package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"railspace_backend/platform/config"
	"railspace_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSecret = "test-secret"

func serve(t *testing.T, guard gin.HandlerFunc, header string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded", guard, func(c *gin.Context) {
		id := GetIdentity(c)
		if id.IsAuthenticated() {
			c.String(http.StatusOK, id.UserID().String()+"|"+id.Email())
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestAdminRequired(t *testing.T) {
	cfg := &config.Config{AdminToken: "s3cret"}
	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "bearer token", header: "Bearer s3cret", want: http.StatusOK},
		{name: "raw token", header: "s3cret", want: http.StatusOK},
		{name: "wrong token", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "missing token", header: "", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, AdminRequired(cfg, logger.Discard()), tt.header)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestAdminRequiredOpenWithoutToken(t *testing.T) {
	rec := serve(t, AdminRequired(&config.Config{}, nil), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 when no admin token is configured, got %d", rec.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	cfg := &config.Config{AuthJWTSecret: testSecret, AuthJWTAudience: "authenticated"}
	userID := uuid.New()
	exp := time.Now().Add(time.Hour).Unix()

	valid := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": userID.String(), "email": " Applicant@Example.com ", "aud": "authenticated", "exp": exp,
	})
	wrongAudience := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": userID.String(), "aud": "service_role", "exp": exp,
	})
	expired := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": userID.String(), "aud": "authenticated", "exp": time.Now().Add(-time.Hour).Unix(),
	})
	badSubject := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "not-a-uuid", "aud": "authenticated", "exp": exp,
	})
	otherKey := signToken(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{
		"sub": userID.String(), "aud": "authenticated", "exp": exp,
	})
	wrongAlg := signToken(t, jwt.SigningMethodHS512, []byte(testSecret), jwt.MapClaims{
		"sub": userID.String(), "aud": "authenticated", "exp": exp,
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid", header: "Bearer " + valid, want: http.StatusOK},
		{name: "missing", header: "", want: http.StatusUnauthorized},
		{name: "not bearer", header: valid, want: http.StatusUnauthorized},
		{name: "wrong audience", header: "Bearer " + wrongAudience, want: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, want: http.StatusUnauthorized},
		{name: "bad subject", header: "Bearer " + badSubject, want: http.StatusUnauthorized},
		{name: "other key", header: "Bearer " + otherKey, want: http.StatusUnauthorized},
		{name: "wrong algorithm", header: "Bearer " + wrongAlg, want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, AuthRequired(cfg), tt.header)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
			if tt.want == http.StatusOK {
				want := userID.String() + "|applicant@example.com"
				if rec.Body.String() != want {
					t.Fatalf("expected identity %q, got %q", want, rec.Body.String())
				}
			}
		})
	}
}

func TestAuthRequiredWithoutSecret(t *testing.T) {
	rec := serve(t, AuthRequired(&config.Config{}), "Bearer anything")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestPerMinuteLimiter(t *testing.T) {
	limiter := NewPerMinuteLimiter(2, logger.Discard())
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, serve(t, limiter.RateLimit(), "").Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected two requests then 429, got %v", codes)
	}
}

func TestRequestIDReusesSaneHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Body.String() != "abc-123" || rec.Header().Get(HeaderRequestID) != "abc-123" {
		t.Fatalf("expected inbound id to be reused, got body=%q header=%q", rec.Body.String(), rec.Header().Get(HeaderRequestID))
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if _, err := uuid.Parse(rec.Body.String()); err != nil {
		t.Fatalf("expected generated uuid, got %q", rec.Body.String())
	}
}
