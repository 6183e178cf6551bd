package restapi

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterPortfolioRoutes attaches the portfolio endpoints to the router.
func RegisterPortfolioRoutes(router *gin.Engine, handler *PortfolioHandler) {
	router.GET("/healthz", handler.HealthzHandler)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/portfolio", handler.ResolvePortfolioHandler)
		v1.GET("/portfolio/:chain/:address", handler.SingleWalletHandler)
		v1.GET("/chains", handler.ListChainsHandler)
	}
}

// RegisterSwaggerRoutes serves the static OpenAPI document and mounts the
// Swagger UI under the given path.
func RegisterSwaggerRoutes(router *gin.Engine, path string) {
	router.StaticFile("/docs/swagger.yaml", "./docs/swagger.yaml")

	swaggerURL := ginSwagger.URL("/docs/swagger.yaml")
	router.GET(path+"/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, swaggerURL))
}
