// api/middleware/project_access.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/projecthub-io/api/logging"
	"github.com/projecthub-io/api/model"
	"github.com/projecthub-io/api/service"
	"github.com/projecthub-io/api/util"
)

// RequireProjectRole resolves the caller's role on the project named by the
// :id route parameter and rejects the request unless it grants at least the
// required role. The lookup goes through the cache-aside access layer, so a
// caching outage only costs a store round trip, never availability.
func RequireProjectRole(members service.IMemberService, requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := util.GetUserIDFromContext(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		projectID := c.Param("id")

		access, err := members.GetProjectAccess(c.Request.Context(), userID, projectID)
		if err != nil {
			logger.Error("Failed to resolve project access", zap.Error(err),
				zap.String("userID", userID),
				zap.String("projectID", projectID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve project access"})
			c.Abort()
			return
		}
		if access == nil {
			logger.Warn("User has no membership on project",
				zap.String("userID", userID),
				zap.String("projectID", projectID))
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			c.Abort()
			return
		}
		if !model.RoleAtLeast(access.Role, requiredRole) {
			logger.Warn("User role insufficient for operation",
				zap.String("userID", userID),
				zap.String("projectID", projectID),
				zap.String("role", access.Role),
				zap.String("required", requiredRole))
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			c.Abort()
			return
		}

		c.Set("projectAccess", access)
		c.Next()
	}
}
