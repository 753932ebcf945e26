// Package routes maps HTTP endpoints onto handlers.
package routes

import (
	"github.com/gin-gonic/gin"

	"numbers/internal/interfaces/http/handlers"
	"numbers/internal/interfaces/http/middleware"
)

// NumberRouteConfig holds dependencies for number routes.
type NumberRouteConfig struct {
	NumberHandler  *handlers.NumberHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupNumberRoutes configures the number pool and assignment routes.
func SetupNumberRoutes(engine *gin.Engine, cfg *NumberRouteConfig) {
	numbers := engine.Group("/v1/numbers")
	numbers.Use(cfg.AuthMiddleware.RequireAuth())
	{
		numbers.GET("", cfg.NumberHandler.ListNumbers)
		numbers.GET("/assignments", cfg.NumberHandler.ListNumberAssignments)
		numbers.GET("/:id", cfg.NumberHandler.GetNumber)

		// Assignment lifecycle of a single number.
		numbers.POST("/:id/assignment", cfg.NumberHandler.AssignNumber)
		numbers.GET("/:id/assignment", cfg.NumberHandler.GetAssignment)
		numbers.PATCH("/:id/assignment", cfg.NumberHandler.UpdateAssignment)
		numbers.PUT("/:id/assignment", cfg.NumberHandler.ReassignNumber)
		numbers.DELETE("/:id/assignment", cfg.NumberHandler.DisassociateNumber)
	}

	// Pool management is restricted to platform operators.
	admin := engine.Group("/v1/numbers")
	admin.Use(cfg.AuthMiddleware.RequireAuth())
	admin.Use(cfg.AuthMiddleware.RequireAdmin())
	{
		admin.POST("", cfg.NumberHandler.RegisterNumber)
		admin.PATCH("/:id", cfg.NumberHandler.UpdateNumber)
		admin.DELETE("/:id", cfg.NumberHandler.DeleteNumber)
	}
}
