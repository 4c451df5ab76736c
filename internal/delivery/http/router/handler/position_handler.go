package handler

import (
	"net/http"
	"time"

	"spotalert/internal/delivery/http/response"
	"spotalert/internal/infra/geofence"
	"spotalert/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PositionHandlerParams holds dependencies for PositionHandler, injected by Fx.
type PositionHandlerParams struct {
	fx.In

	Monitor     *geofence.Monitor
	ProximityUC usecase.ProximityUsecase
}

// PositionHandler holds dependencies for position-related handlers
type PositionHandler struct {
	monitor     *geofence.Monitor
	proximityUC usecase.ProximityUsecase
}

// NewPositionHandler is the constructor for PositionHandler
func NewPositionHandler(params PositionHandlerParams) *PositionHandler {
	return &PositionHandler{
		monitor:     params.Monitor,
		proximityUC: params.ProximityUC,
	}
}

// ReportPositionRequest represents a live position update
type ReportPositionRequest struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// CurrentAlertResponse represents the current proximity status
type CurrentAlertResponse struct {
	Active  bool   `json:"active"`
	Message string `json:"message,omitempty"`
}

// ReportPosition handles a live position update from the device
func (h *PositionHandler) ReportPosition(c echo.Context) error {
	var req ReportPositionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid position input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	h.monitor.Report(req.Latitude, req.Longitude, time.Now())

	return response.Success(c, http.StatusAccepted, nil, "Position accepted")
}

// CurrentAlert handles retrieving the current proximity status
func (h *PositionHandler) CurrentAlert(c echo.Context) error {
	message, active := h.proximityUC.CurrentAlert()

	return response.Success(c, http.StatusOK, CurrentAlertResponse{
		Active:  active,
		Message: message,
	}, "Alert status retrieved successfully")
}
