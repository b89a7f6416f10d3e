package handlers

import (
	"net/http"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/api/response"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/apperrors"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/service"
)

// FxHandler handles HTTP requests for the currency rate table.
type FxHandler struct {
	fxService *service.FxService
}

// NewFxHandler creates a new FxHandler with the provided service dependency.
func NewFxHandler(fxService *service.FxService) *FxHandler {
	return &FxHandler{
		fxService: fxService,
	}
}

// Rates handles GET requests for the stored FX table.
//
// Endpoint: GET /api/fx
// Response: 200 OK with FxTable (may be empty)
// Error: 500 Internal Server Error if retrieval fails
func (h *FxHandler) Rates(w http.ResponseWriter, _ *http.Request) {
	rates, err := h.fxService.GetRates()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveRates.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, rates)
}

// Refresh handles POST requests forcing an immediate rate refresh from the
// rate API, outside the daily schedule.
//
// Endpoint: POST /api/fx/refresh
// Response: 200 OK with the refreshed FxTable
// Error: 502 Bad Gateway if the rate API could not be reached or returned
// an incomplete table; the stored rates are left untouched
func (h *FxHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	rates, err := h.fxService.RefreshRates(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToRefreshRates.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, rates)
}

// RefreshPrices handles POST requests forcing an immediate traded-price
// refresh for coded public equity and commodity holdings.
//
// Endpoint: POST /api/fx/prices/refresh
// Response: 200 OK with PriceRefreshResult
// Error: 500 Internal Server Error if the refresh fails
func (h *FxHandler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	result, err := h.fxService.RefreshTradedPrices(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to refresh prices", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
