package handlers

import (
	"net/http"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/api/request"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/api/response"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/apperrors"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/service"
)

// ProjectionHandler handles HTTP requests for the projection view and its settings.
type ProjectionHandler struct {
	projectionService *service.ProjectionService
}

// NewProjectionHandler creates a new ProjectionHandler with the provided service dependency.
func NewProjectionHandler(projectionService *service.ProjectionService) *ProjectionHandler {
	return &ProjectionHandler{
		projectionService: projectionService,
	}
}

// Projection handles GET requests for the bucket projection.
//
// Endpoint: GET /api/projection
// Response: 200 OK with Projection (buckets plus the settings used)
// Error: 500 Internal Server Error if the computation fails
func (h *ProjectionHandler) Projection(w http.ResponseWriter, _ *http.Request) {
	projection, err := h.projectionService.GetProjection()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetProjection.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, projection)
}

// Settings handles GET requests for the stored projection settings.
//
// Endpoint: GET /api/projection/settings
// Response: 200 OK with ProjectionSettings
// Error: 500 Internal Server Error if retrieval fails
func (h *ProjectionHandler) Settings(w http.ResponseWriter, _ *http.Request) {
	settings, err := h.projectionService.GetSettings()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSettings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles PUT requests replacing the projection settings.
//
// Endpoint: PUT /api/projection/settings
// Request Body: UpdateProjectionSettingsRequest
// Response: 200 OK with the stored ProjectionSettings
// Error: 400 Bad Request if validation fails or the body is invalid
// Error: 500 Internal Server Error if the update fails
func (h *ProjectionHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateProjectionSettingsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	settings, err := h.projectionService.UpdateSettings(r.Context(), req)
	if err != nil {
		if respondValidationError(w, err) {
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSaveSettings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, settings)
}
