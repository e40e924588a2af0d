// api/controller/cache_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/projecthub-io/api/cache"
)

type CacheController struct {
	accessCache *cache.AccessCache
}

func NewCacheController(accessCache *cache.AccessCache) *CacheController {
	return &CacheController{
		accessCache: accessCache,
	}
}

// RegisterRoutes registers the API routes
func (cc *CacheController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/cache/stats", cc.GetCacheStats)
}

// GetCacheStats returns a diagnostic snapshot of the cache layer
func (cc *CacheController) GetCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, cc.accessCache.Stats())
}
