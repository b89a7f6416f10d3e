package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/aggregation"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/api/request"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/api/response"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/apperrors"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/refdata"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/service"
)

// HoldingHandler handles HTTP requests for holding endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the holding and dashboard services.
type HoldingHandler struct {
	holdingService   *service.HoldingService
	dashboardService *service.DashboardService
}

// NewHoldingHandler creates a new HoldingHandler with the provided service dependencies.
func NewHoldingHandler(holdingService *service.HoldingService, dashboardService *service.DashboardService) *HoldingHandler {
	return &HoldingHandler{
		holdingService:   holdingService,
		dashboardService: dashboardService,
	}
}

// Holdings handles GET requests to retrieve holdings with their valuations.
// Supports filtering by class, entity, bank, and currency query parameters.
// Each row carries its percentage of the filtered scope's total.
//
// Endpoint: GET /api/holding
// Response: 200 OK with array of ScopedHolding
// Error: 500 Internal Server Error if retrieval fails
func (h *HoldingHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	filter := model.HoldingFilter{
		Class:    refdata.AssetClass(r.URL.Query().Get("class")),
		Entity:   r.URL.Query().Get("entity"),
		Bank:     r.URL.Query().Get("bank"),
		Currency: r.URL.Query().Get("currency"),
		Name:     r.URL.Query().Get("name"),
	}

	holdings, err := h.dashboardService.ValuedHoldings(filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHoldings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, aggregation.PercentOfScope(holdings))
}

// GetHolding handles GET requests to retrieve a single holding by ID.
//
// Endpoint: GET /api/holding/{uuid}
// Response: 200 OK with Holding
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 404 Not Found if the holding does not exist
// Error: 500 Internal Server Error if retrieval fails
func (h *HoldingHandler) GetHolding(w http.ResponseWriter, r *http.Request) {
	holdingID := chi.URLParam(r, "uuid")

	holding, err := h.holdingService.GetHolding(holdingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrHoldingNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrHoldingNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHolding.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, holding)
}

// NameGroups handles GET requests for the derived shared-asset index.
//
// Endpoint: GET /api/holding/groups
// Response: 200 OK with array of NameGroup
// Error: 500 Internal Server Error if retrieval fails
func (h *HoldingHandler) NameGroups(w http.ResponseWriter, _ *http.Request) {
	groups, err := h.holdingService.GetNameGroups()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHoldings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, groups)
}

// CreateHolding handles POST requests to create a new holding.
//
// Endpoint: POST /api/holding
// Request Body: CreateHoldingRequest
// Response: 201 Created with CreateHoldingResult (holding plus optional near-duplicate warning)
// Error: 400 Bad Request if validation fails or the body is invalid
// Error: 409 Conflict if a holding with the same name exists and AllowExisting was not set
// Error: 500 Internal Server Error if creation fails
func (h *HoldingHandler) CreateHolding(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateHoldingRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.holdingService.CreateHolding(r.Context(), req)
	if err != nil {
		if respondValidationError(w, err) {
			return
		}
		if errors.Is(err, apperrors.ErrHoldingAlreadyExists) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrHoldingAlreadyExists.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSaveHolding.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, result)
}

// UpdateHolding handles PUT requests applying a partial update to a holding.
// Shared-field changes propagate to the whole name group atomically.
//
// Endpoint: PUT /api/holding/{uuid}
// Request Body: UpdateHoldingRequest
// Response: 200 OK with the updated Holding
// Error: 400 Bad Request if validation fails or the body is invalid
// Error: 404 Not Found if the holding does not exist
// Error: 500 Internal Server Error if the update fails
func (h *HoldingHandler) UpdateHolding(w http.ResponseWriter, r *http.Request) {
	holdingID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateHoldingRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	holding, err := h.holdingService.UpdateHolding(r.Context(), holdingID, req)
	if err != nil {
		if respondValidationError(w, err) {
			return
		}
		if errors.Is(err, apperrors.ErrHoldingNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrHoldingNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSaveHolding.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, holding)
}

// DeleteHolding handles DELETE requests to remove a single holding.
//
// Endpoint: DELETE /api/holding/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the holding does not exist
// Error: 500 Internal Server Error if the deletion fails
func (h *HoldingHandler) DeleteHolding(w http.ResponseWriter, r *http.Request) {
	holdingID := chi.URLParam(r, "uuid")

	if err := h.holdingService.DeleteHolding(r.Context(), holdingID); err != nil {
		if errors.Is(err, apperrors.ErrHoldingNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrHoldingNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToDeleteHolding.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
