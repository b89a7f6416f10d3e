package handlers

import (
	"net/http"
	"strings"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/aggregation"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/api/response"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/apperrors"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/service"
)

// DashboardHandler handles HTTP requests for the read-side dashboard views.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler with the provided service dependency.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Summary handles GET requests for the headline portfolio totals.
//
// Endpoint: GET /api/dashboard/summary
// Response: 200 OK with Summary
// Error: 500 Internal Server Error if the computation fails
func (h *DashboardHandler) Summary(w http.ResponseWriter, _ *http.Request) {
	summary, err := h.dashboardService.GetSummary()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// Groups handles GET requests for ad-hoc grouping of holdings.
// The by query parameter takes a comma-separated list of group fields
// (class, sub_class, name, entity, bank, currency, beneficiary); order is
// "value" (default) or "key".
//
// Endpoint: GET /api/dashboard/groups?by=class,entity&order=value
// Response: 200 OK with array of Group
// Error: 400 Bad Request for an unknown group field
// Error: 500 Internal Server Error if the computation fails
func (h *DashboardHandler) Groups(w http.ResponseWriter, r *http.Request) {
	by := r.URL.Query().Get("by")
	if by == "" {
		by = "class"
	}

	var fields []aggregation.GroupField
	for _, raw := range strings.Split(by, ",") {
		field, err := aggregation.ParseGroupField(strings.TrimSpace(raw))
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid group field", err.Error())
			return
		}
		fields = append(fields, field)
	}

	order := aggregation.OrderByValue
	if r.URL.Query().Get("order") == "key" {
		order = aggregation.OrderByKey
	}

	groups, err := h.dashboardService.GetGroups(fields, order)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetGroups.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, groups)
}

// Rollup handles GET requests for the class / sub-class / asset hierarchy.
//
// Endpoint: GET /api/dashboard/rollup
// Response: 200 OK with array of ClassNode
// Error: 500 Internal Server Error if the computation fails
func (h *DashboardHandler) Rollup(w http.ResponseWriter, _ *http.Request) {
	rollup, err := h.dashboardService.GetRollup()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetRollup.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, rollup)
}

// Liquidity handles GET requests for the liquidity category by beneficiary matrix.
//
// Endpoint: GET /api/dashboard/liquidity
// Response: 200 OK with LiquidityMatrix
// Error: 500 Internal Server Error if the computation fails
func (h *DashboardHandler) Liquidity(w http.ResponseWriter, _ *http.Request) {
	matrix, err := h.dashboardService.GetLiquidityMatrix()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetLiquidityMatrix.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, matrix)
}

// Yield handles GET requests for the weighted fixed income yield.
//
// Endpoint: GET /api/dashboard/yield
// Response: 200 OK with YieldSummary
// Error: 500 Internal Server Error if the computation fails
func (h *DashboardHandler) Yield(w http.ResponseWriter, _ *http.Request) {
	yield, err := h.dashboardService.GetYield()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetYield.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, yield)
}
