// api/middleware/auth.go
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	logger "github.com/projecthub-io/api/logging"
	"github.com/projecthub-io/api/model"
)

// TokenVerifier validates a bearer token and extracts its identity claims.
// Signature verification itself is a collaborator concern; the middleware
// only cares about "verify and extract claims".
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*model.UserClaims, error)
}

type bearerClaims struct {
	jwt.RegisteredClaims
	TenantID string `json:"tid"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// HMACVerifier verifies HS256-signed tokens with a shared secret.
type HMACVerifier struct {
	secret []byte
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

func (v *HMACVerifier) Verify(ctx context.Context, tokenString string) (*model.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &bearerClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*bearerClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token or wrong claims type")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return &model.UserClaims{
		UserID:   claims.Subject,
		TenantID: claims.TenantID,
		Email:    claims.Email,
		Name:     claims.Name,
	}, nil
}

// Auth extracts and verifies the bearer token, placing the caller's identity
// in the request context.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			logger.Warn("No Authorization token provided", zap.String("path", c.Request.URL.Path))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims, err := verifier.Verify(c.Request.Context(), tokenString)
		if err != nil {
			logger.Warn("Token verification failed", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userClaims", claims)
		c.Next()
	}
}
