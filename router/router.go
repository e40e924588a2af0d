// api/router/router.go

package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/projecthub-io/api/controller"
	"github.com/projecthub-io/api/middleware"
)

func SetupRouter(
	controllers *controller.Controllers,
	verifier middleware.TokenVerifier,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(middleware.Auth(verifier))

	controllers.Project.RegisterRoutes(api)
	controllers.Member.RegisterRoutes(api)
	controllers.Cache.RegisterRoutes(api)

	return router
}
