package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(rate.Limit(10), 5)

	// Test getting limiter for same IP
	ip1 := "192.168.1.1"
	limiter1 := limiter.GetLimiter(ip1)
	limiter2 := limiter.GetLimiter(ip1)

	if limiter1 != limiter2 {
		t.Error("Expected same limiter for same IP")
	}

	// Test getting limiter for different IP
	ip2 := "192.168.1.2"
	limiter3 := limiter.GetLimiter(ip2)

	if limiter1 == limiter3 {
		t.Error("Expected different limiters for different IPs")
	}
}

func TestDefaultSecurityConfig(t *testing.T) {
	config := DefaultSecurityConfig()

	if config == nil {
		t.Fatal("Expected non-nil config")
	}

	if !config.EnableRateLimit {
		t.Error("Expected rate limiting to be enabled by default")
	}

	if config.RateLimitPerSecond != 10.0 {
		t.Errorf("Expected rate limit per second to be 10.0, got %f", config.RateLimitPerSecond)
	}

	if config.RateLimitBurst != 20 {
		t.Errorf("Expected rate limit burst to be 20, got %d", config.RateLimitBurst)
	}

	if !config.EnableCORS {
		t.Error("Expected CORS to be enabled by default")
	}

	if !config.EnableSecurityHeaders {
		t.Error("Expected security headers to be enabled by default")
	}

	if config.MaxRequestSize != 10<<20 {
		t.Errorf("Expected max request size to be 10MB, got %d", config.MaxRequestSize)
	}

	if !config.EnableRequestID {
		t.Error("Expected request ID to be enabled by default")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	limiter := NewRateLimiter(rate.Limit(1), 2)
	router.Use(RateLimitMiddleware(limiter))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Burst of 2 passes, the third request is rejected
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected request %d to pass, got status %d", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	router.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429 after burst exhausted, got %d", w.Code)
	}
}

func TestRequestSizeMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(RequestSizeMiddleware(100))
	router.POST("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/test", nil)
	req.ContentLength = 1000
	router.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected status 413 for oversized request, got %d", w.Code)
	}
}

func TestInputValidationMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(InputValidationMiddleware())
	router.GET("/articles", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/articles/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"valid request", "/articles?limit=10&offset=0", http.StatusOK},
		{"invalid limit", "/articles?limit=abc", http.StatusBadRequest},
		{"invalid offset", "/articles?offset=-1", http.StatusBadRequest},
		{"valid time range", "/articles?timeRange=7d", http.StatusOK},
		{"invalid time range", "/articles?timeRange=1y", http.StatusBadRequest},
		{"valid id", "/articles/42", http.StatusOK},
		{"invalid id", "/articles/42abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", tt.path, nil)
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d for %s, got %d", tt.wantStatus, tt.path, w.Code)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		headers  map[string]string
		expected string
	}{
		{
			name:     "X-Forwarded-For single",
			headers:  map[string]string{"X-Forwarded-For": "203.0.113.5"},
			expected: "203.0.113.5",
		},
		{
			name:     "X-Forwarded-For chain takes first",
			headers:  map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"},
			expected: "203.0.113.5",
		},
		{
			name:     "X-Real-IP fallback",
			headers:  map[string]string{"X-Real-IP": "198.51.100.7"},
			expected: "198.51.100.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest("GET", "/", nil)
			for key, value := range tt.headers {
				c.Request.Header.Set(key, value)
			}

			if got := getClientIP(c); got != tt.expected {
				t.Errorf("Expected IP %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestIsValidNumber(t *testing.T) {
	valid := []string{"0", "42", "100000"}
	for _, input := range valid {
		if !isValidNumber(input) {
			t.Errorf("Expected %q to be a valid number", input)
		}
	}

	invalid := []string{"", "-1", "1.5", "abc", "12a"}
	for _, input := range invalid {
		if isValidNumber(input) {
			t.Errorf("Expected %q to be invalid", input)
		}
	}
}
