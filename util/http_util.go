// api/util/http_util.go
package util

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	api_errors "github.com/projecthub-io/api/errors"
	logger "github.com/projecthub-io/api/logging"
)

func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(code, gin.H{"error": message})
}

func GetUserIDFromContext(c *gin.Context) (string, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", api_errors.ErrUnauthorized
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		return "", api_errors.ErrUnauthorized
	}
	return id, nil
}
