package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/windoze95/cardapio-api/internal/config"
	"github.com/windoze95/cardapio-api/internal/util"
)

// Token errors.
var (
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrMissingSubject   = errors.New("token has no subject")
)

const accessTokenType = "access"

// NewAccessToken signs an HS256 access token for callerID (a device or
// terminal name) valid for ttl.
func NewAccessToken(secret, callerID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  callerID,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
		"type": accessTokenType,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseAccessToken validates tokenString and returns the caller ID it was
// issued to.
func ParseAccessToken(secret, tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	// Ensure this is an access token, not a refresh token
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != accessTokenType {
		return "", ErrInvalidTokenType
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrMissingSubject
	}
	return sub, nil
}

// VerifyTokenMiddleware verifies the JWT token provided in the Authorization header.
func VerifyTokenMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		tokenString = strings.TrimSpace(tokenString)

		callerID, err := ParseAccessToken(cfg.EnvVars.JwtSecretKey, tokenString)
		if err != nil {
			status := http.StatusUnauthorized
			if errors.Is(err, ErrMissingSubject) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"message": err.Error()})
			c.Abort()
			return
		}

		util.SetCallerID(c, callerID)
		c.Next()
	}
}
