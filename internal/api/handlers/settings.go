package handlers

import (
	"net/http"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/api/request"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/api/response"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/apperrors"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/service"
)

// SettingsHandler handles HTTP requests for the limited-liquidity name set.
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler with the provided service dependency.
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// LiquidityResponse is the limited-liquidity setting payload.
type LiquidityResponse struct {
	Names []string `json:"names"`
}

// Liquidity handles GET requests for the limited-liquidity name set.
//
// Endpoint: GET /api/settings/liquidity
// Response: 200 OK with LiquidityResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *SettingsHandler) Liquidity(w http.ResponseWriter, _ *http.Request) {
	names, err := h.settingsService.GetLimitedLiquidity()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSettings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, LiquidityResponse{Names: names})
}

// UpdateLiquidity handles PUT requests replacing the limited-liquidity name set.
//
// Endpoint: PUT /api/settings/liquidity
// Request Body: UpdateLiquidityRequest
// Response: 200 OK with the stored LiquidityResponse
// Error: 400 Bad Request if the body is invalid
// Error: 500 Internal Server Error if the update fails
func (h *SettingsHandler) UpdateLiquidity(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateLiquidityRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	names, err := h.settingsService.UpdateLimitedLiquidity(r.Context(), req.Names)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSaveSettings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, LiquidityResponse{Names: names})
}
