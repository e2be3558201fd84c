package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ledgerlite57-code/ledgerlite-sub002/cmd/docs"
	portssvc "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/services"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/middleware"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/platform/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// A nil limiter disables rate limiting.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {
	registerHomeRoutes(r)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, rateLimiter)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	// Limits apply per actor, so they run after authentication
	if rateLimiter != nil {
		v1.Use(middleware.RateLimit(rateLimiter))
	}

	RegisterOrgRoutes(v1.Group("/orgs/:orgID"), service)
}

// RegisterOrgRoutes registers every organization-scoped route on group.
func RegisterOrgRoutes(org *gin.RouterGroup, service *portssvc.ServiceContainer) {
	RegisterDocumentRoutes(org, service.Document)
	RegisterPaymentRoutes(org, service.Payment)
	RegisterSalesDocumentRoutes(org, service.SalesDocument)
	RegisterCreditNoteRoutes(org, service.CreditNote)
	RegisterOpeningBalanceRoutes(org, service.OpeningBalance)
	RegisterPDCRoutes(org, service.PDC)
	RegisterGLRoutes(org, service.GL)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
