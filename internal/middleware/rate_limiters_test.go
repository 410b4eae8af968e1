package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func setupRateLimitRouter(rps int) *gin.Engine {
	r := gin.New()
	r.Use(RateLimitByIP(rps, time.Minute, time.Minute))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func doFrom(r *gin.Engine, remoteAddr string) int {
	req := httptest.NewRequest("GET", "/test", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitByIP_BurstThenReject(t *testing.T) {
	r := setupRateLimitRouter(2)

	for i := 0; i < 2; i++ {
		if code := doFrom(r, "10.0.0.1:1234"); code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, code)
		}
	}
	if code := doFrom(r, "10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", code)
	}
}

func TestRateLimitByIP_PerIP(t *testing.T) {
	r := setupRateLimitRouter(1)

	if code := doFrom(r, "10.0.0.1:1234"); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if code := doFrom(r, "10.0.0.2:1234"); code != http.StatusOK {
		t.Errorf("second IP status = %d, want 200", code)
	}
}

func TestRateLimitByIP_Disabled(t *testing.T) {
	r := setupRateLimitRouter(0)

	for i := 0; i < 20; i++ {
		if code := doFrom(r, "10.0.0.1:1234"); code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, code)
		}
	}
}
