package routes

import (
	"github.com/gin-gonic/gin"

	"numbers/internal/interfaces/http/handlers"
	"numbers/internal/interfaces/http/middleware"
)

// AuditRouteConfig holds dependencies for audit routes.
type AuditRouteConfig struct {
	AuditHandler   *handlers.AuditHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupAuditRoutes configures the assignment audit trail routes.
func SetupAuditRoutes(engine *gin.Engine, cfg *AuditRouteConfig) {
	auditing := engine.Group("/v1/auditing")
	auditing.Use(cfg.AuthMiddleware.RequireAuth())
	{
		auditing.GET("/assignments", cfg.AuditHandler.ListAssignmentAudits)
	}
}
