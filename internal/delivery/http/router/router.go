// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"spotalert/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	LocationHandler *handler.LocationHandler
	PositionHandler *handler.PositionHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	locationHandler *handler.LocationHandler
	positionHandler *handler.PositionHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		locationHandler: params.LocationHandler,
		positionHandler: params.PositionHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Saved alert locations
	locationGroup := e.Group("/locations")
	{
		locationGroup.GET("", r.locationHandler.ListLocations)
		locationGroup.POST("", r.locationHandler.CreateLocation)
		locationGroup.POST("/search", r.locationHandler.SearchLocation)
		locationGroup.PATCH("/:id", r.locationHandler.UpdateReminder)
		locationGroup.DELETE("/:id", r.locationHandler.DeleteLocation)
		locationGroup.GET("/:id/qrcode", r.locationHandler.LocationQR)
	}

	// Live position intake and alert status
	e.POST("/positions", r.positionHandler.ReportPosition)
	e.GET("/alerts/current", r.positionHandler.CurrentAlert)
}
