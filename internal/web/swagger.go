package web

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SwaggerServer exposes the aggregator's API documentation UI. Disabled
// instances register no routes at all.
type SwaggerServer struct {
	enabled bool
}

func NewSwaggerServer(enabled bool) *SwaggerServer {
	return &SwaggerServer{enabled: enabled}
}

func (s *SwaggerServer) RegisterRoutes(router *gin.Engine) {
	if !s.enabled {
		return
	}

	// Swagger UI for the news aggregation API
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
