package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDeviceMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(DeviceMiddleware())
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(DeviceContextKey))
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusBadRequest},
		{"valid", "phone-01.a_b", http.StatusOK},
		{"bad characters", "dev:1", http.StatusBadRequest},
		{"too long", strings.Repeat("a", maxDeviceIDLen+1), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.header != "" {
				req.Header.Set(DeviceHeader, tt.header)
			}
			w := serve(r, req)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
			if tt.status == http.StatusOK && w.Body.String() != tt.header {
				t.Errorf("device id not stored, got %q", w.Body.String())
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	get := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		return serve(r, req).Code
	}

	if get("1.1.1.1") != http.StatusOK || get("1.1.1.1") != http.StatusOK {
		t.Fatal("burst requests should pass")
	}
	if code := get("1.1.1.1"); code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", code)
	}
	if code := get("2.2.2.2"); code != http.StatusOK {
		t.Errorf("other clients must have their own bucket, got %d", code)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": " 3.3.3.3 , 4.4.4.4"}, "9.9.9.9:1", "3.3.3.3"},
		{"real ip", map[string]string{"X-Real-IP": "5.5.5.5"}, "9.9.9.9:1", "5.5.5.5"},
		{"remote", nil, "9.9.9.9:1234", "9.9.9.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}
			if got := getClientIP(c); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/x", func(c *gin.Context) {
		if _, ok := c.Get(LoggerContextKey); !ok {
			t.Error("logger not set in context")
		}
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	w := serve(r, req)

	if w.Header().Get(RequestIDHeader) != "req-1" {
		t.Errorf("request id not echoed")
	}
	entries := logs.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("expected one request log, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-1" || fields["status"] != int64(http.StatusNoContent) {
		t.Errorf("unexpected fields %v", fields)
	}
}
