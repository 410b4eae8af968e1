package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/windoze95/cardapio-api/internal/config"
	"github.com/windoze95/cardapio-api/internal/util"
)

const testSecret = "test-secret-key-for-jwt-signing"

func init() {
	gin.SetMode(gin.TestMode)
}

func makeTestToken(callerID string, tokenType string, expiry time.Time, secret string) string {
	claims := jwt.MapClaims{
		"sub":  callerID,
		"exp":  expiry.Unix(),
		"iat":  time.Now().Unix(),
		"type": tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, _ := token.SignedString([]byte(secret))
	return s
}

func setupTokenRouter() *gin.Engine {
	cfg := &config.Config{
		EnvVars: config.EnvVars{
			JwtSecretKey: testSecret,
		},
	}

	r := gin.New()
	r.Use(VerifyTokenMiddleware(cfg))
	r.GET("/test", func(c *gin.Context) {
		callerID, _ := util.GetCallerIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"caller_id": callerID})
	})
	return r
}

func doWithToken(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/test", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestVerifyToken_ValidAccessToken(t *testing.T) {
	r := setupTokenRouter()

	token := makeTestToken("balcao-1", "access", time.Now().Add(15*time.Minute), testSecret)
	w := doWithToken(r, token)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d. body: %s", w.Code, http.StatusOK, w.Body.String())
	}
}

func TestVerifyToken_MissingAuthorizationHeader(t *testing.T) {
	if w := doWithToken(setupTokenRouter(), ""); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestVerifyToken_ExpiredToken(t *testing.T) {
	token := makeTestToken("balcao-1", "access", time.Now().Add(-1*time.Hour), testSecret)
	if w := doWithToken(setupTokenRouter(), token); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestVerifyToken_InvalidToken(t *testing.T) {
	if w := doWithToken(setupTokenRouter(), "invalid.token.here"); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token := makeTestToken("balcao-1", "access", time.Now().Add(15*time.Minute), "wrong-secret")
	if w := doWithToken(setupTokenRouter(), token); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestVerifyToken_RefreshTokenRejected(t *testing.T) {
	token := makeTestToken("balcao-1", "refresh", time.Now().Add(30*24*time.Hour), testSecret)
	if w := doWithToken(setupTokenRouter(), token); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d (refresh token should be rejected for access routes)", w.Code, http.StatusUnauthorized)
	}
}

func TestVerifyToken_MissingSubject(t *testing.T) {
	token := makeTestToken("", "access", time.Now().Add(15*time.Minute), testSecret)
	if w := doWithToken(setupTokenRouter(), token); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestVerifyToken_SetsCallerIDInContext(t *testing.T) {
	cfg := &config.Config{
		EnvVars: config.EnvVars{
			JwtSecretKey: testSecret,
		},
	}

	var captured string
	r := gin.New()
	r.Use(VerifyTokenMiddleware(cfg))
	r.GET("/test", func(c *gin.Context) {
		callerID, err := util.GetCallerIDFromContext(c)
		if err != nil {
			t.Error("caller_id not set in context")
			return
		}
		captured = callerID
		c.JSON(http.StatusOK, gin.H{})
	})

	token := makeTestToken("totem-99", "access", time.Now().Add(15*time.Minute), testSecret)
	w := doWithToken(r, token)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if captured != "totem-99" {
		t.Errorf("caller_id in context = %q, want totem-99", captured)
	}
}

func TestNewAccessToken_RoundTrip(t *testing.T) {
	token, err := NewAccessToken(testSecret, "cozinha", time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	callerID, err := ParseAccessToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseAccessToken error: %v", err)
	}
	if callerID != "cozinha" {
		t.Errorf("callerID = %q, want cozinha", callerID)
	}
	if _, err := ParseAccessToken("other", token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}
