package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"vrajamarii/internal/metrics"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", AuthMiddleware(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.MustGet("user_id").(uuid.UUID).String(),
			"email":   c.GetString("email"),
		})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	valid := jwt.MapClaims{
		"sub":   userID.String(),
		"email": "Ana@Example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, "Authorization header is required"},
		{"bad format", "Token abc", http.StatusUnauthorized, "Invalid authorization header format"},
		{"wrong secret", "Bearer " + signToken(t, "other", valid), http.StatusUnauthorized, "Invalid or expired token"},
		{"expired", "Bearer " + signToken(t, testSecret, jwt.MapClaims{
			"sub": userID.String(), "email": "a@b.ro", "exp": time.Now().Add(-time.Hour).Unix(),
		}), http.StatusUnauthorized, "Invalid or expired token"},
		{"subject not a uuid", "Bearer " + signToken(t, testSecret, jwt.MapClaims{
			"sub": "42", "email": "a@b.ro",
		}), http.StatusUnauthorized, "Invalid token claims"},
		{"missing email", "Bearer " + signToken(t, testSecret, jwt.MapClaims{
			"sub": userID.String(),
		}), http.StatusUnauthorized, "Invalid token claims"},
		{"valid", "Bearer " + signToken(t, testSecret, valid), http.StatusOK, userID.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupAuthRouter()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestAuthMiddlewareLowercasesEmail(t *testing.T) {
	router := setupAuthRouter()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, jwt.MapClaims{
		"sub": uuid.NewString(), "email": "Ana@Example.com",
	}))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"ana@example.com"`)
}

func TestAPIKeyMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		secret         string
		key            string
		expectedStatus int
	}{
		{"matching key", "hook", "hook", http.StatusOK},
		{"wrong key", "hook", "nope", http.StatusUnauthorized},
		{"missing key", "hook", "", http.StatusUnauthorized},
		{"unconfigured secret", "", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.POST("/hook", APIKeyMiddleware(tt.secret), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/hook", nil)
			if tt.key != "" {
				req.Header.Set("x-api-key", tt.key)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestMetricsAndRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector("test", reg, reg)
	core, logs := observer.New(zap.InfoLevel)

	router := gin.New()
	router.Use(MetricsMiddleware(collector), RequestLogger(zap.New(core)))
	router.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/items/1", "/items/2", "/boom"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	w := httptest.NewRecorder()
	collector.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), `endpoint="/items/:id"`)

	assert.Equal(t, 3, logs.Len())
	assert.Equal(t, 1, logs.FilterMessage("request failed").Len())
}
