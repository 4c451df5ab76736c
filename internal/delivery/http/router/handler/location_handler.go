package handler

import (
	"log/slog"
	"net/http"

	"spotalert/internal/delivery/http/response"
	"spotalert/internal/domain/entity"
	domainerrors "spotalert/internal/domain/errors"
	"spotalert/internal/domain/service"
	"spotalert/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// LocationHandlerParams holds dependencies for LocationHandler, injected by Fx.
type LocationHandlerParams struct {
	fx.In

	RegistryUC usecase.RegistryUsecase
	SearchUC   usecase.SearchUsecase
	QRCodeSvc  service.QRCodeService
	Logger     *slog.Logger
}

// LocationHandler holds dependencies for location-related handlers
type LocationHandler struct {
	registryUC usecase.RegistryUsecase
	searchUC   usecase.SearchUsecase
	qrcodeSvc  service.QRCodeService
	logger     *slog.Logger
}

// NewLocationHandler is the constructor for LocationHandler
func NewLocationHandler(params LocationHandlerParams) *LocationHandler {
	return &LocationHandler{
		registryUC: params.RegistryUC,
		searchUC:   params.SearchUC,
		qrcodeSvc:  params.QRCodeSvc,
		logger:     params.Logger,
	}
}

// CreateLocationRequest represents the request body for saving a location
type CreateLocationRequest struct {
	Name      string  `json:"name" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
	Reminder  string  `json:"reminder"`
}

// UpdateReminderRequest represents the request body for editing a reminder
type UpdateReminderRequest struct {
	Reminder string `json:"reminder"`
}

// SearchLocationRequest represents the request body for the search-and-save flow
type SearchLocationRequest struct {
	Query    string `json:"query" validate:"required"`
	Reminder string `json:"reminder"`
}

// CreateLocation handles saving a new alert location
func (h *LocationHandler) CreateLocation(c echo.Context) error {
	var req CreateLocationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid location input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	location := entity.NewAlertLocation(req.Name, req.Latitude, req.Longitude, req.Reminder)
	if err := h.registryUC.Add(c.Request().Context(), location); err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, location, "Location saved successfully")
}

// ListLocations handles retrieving all saved locations in insertion order
func (h *LocationHandler) ListLocations(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.registryUC.Locations(), "Locations retrieved successfully")
}

// UpdateReminder handles editing a saved location's reminder note
func (h *LocationHandler) UpdateReminder(c echo.Context) error {
	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid location ID")
	}

	var req UpdateReminderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reminder input")
	}

	location, err := h.registryUC.UpdateReminder(c.Request().Context(), locationID, req.Reminder)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, location, "Reminder updated successfully")
}

// DeleteLocation handles removing a saved location
func (h *LocationHandler) DeleteLocation(c echo.Context) error {
	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid location ID")
	}

	if err := h.registryUC.Remove(c.Request().Context(), locationID); err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Location removed"}, "Location removed successfully")
}

// SearchLocation handles the search-and-save flow: resolve a free-text
// address query and save the result
func (h *LocationHandler) SearchLocation(c echo.Context) error {
	var req SearchLocationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid search input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	location, err := h.searchUC.SaveByQuery(c.Request().Context(), req.Query, req.Reminder)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, location, "Location resolved and saved successfully")
}

// LocationQR renders a saved location as a scannable share code
func (h *LocationHandler) LocationQR(c echo.Context) error {
	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid location ID")
	}

	location, ok := h.registryUC.Find(locationID)
	if !ok {
		return response.NotFound(c, "LOCATION_NOT_FOUND", "Alert location not found")
	}

	png, err := h.qrcodeSvc.GenerateLocationQR(location)
	if err != nil {
		h.logger.Error("failed to generate location QR", slog.Any("error", err))

		return response.InternalServerError(c, "QR_GENERATION_FAILED", "Could not generate QR code")
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// handleAppError handles application errors
func (h *LocationHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
