package handlers

import (
	"net/http"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/api/response"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/refdata"
)

// RefdataHandler serves the static reference tables the frontend builds its
// forms from.
type RefdataHandler struct{}

// NewRefdataHandler creates a new RefdataHandler.
func NewRefdataHandler() *RefdataHandler {
	return &RefdataHandler{}
}

// RefdataResponse bundles all reference tables in one payload.
type RefdataResponse struct {
	Classes       []refdata.AssetClass            `json:"classes"`
	SubClasses    map[refdata.AssetClass][]string `json:"subClasses"`
	Currencies    []string                        `json:"currencies"`
	Entities      []string                        `json:"entities"`
	Banks         []string                        `json:"banks"`
	Beneficiaries []string                        `json:"beneficiaries"`
	BaseCurrency  string                          `json:"baseCurrency"`
}

// Refdata handles GET requests for the reference tables.
//
// Endpoint: GET /api/refdata
// Response: 200 OK with RefdataResponse
func (h *RefdataHandler) Refdata(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, RefdataResponse{
		Classes:       refdata.Classes,
		SubClasses:    refdata.SubClasses,
		Currencies:    refdata.Currencies,
		Entities:      refdata.Entities,
		Banks:         refdata.Banks,
		Beneficiaries: refdata.Beneficiaries,
		BaseCurrency:  refdata.BaseCurrency,
	})
}
