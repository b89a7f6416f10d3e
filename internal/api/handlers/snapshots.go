package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/api/response"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/apperrors"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/service"
)

// SnapshotHandler handles HTTP requests for portfolio snapshots.
type SnapshotHandler struct {
	snapshotService *service.SnapshotService
}

// NewSnapshotHandler creates a new SnapshotHandler with the provided service dependency.
func NewSnapshotHandler(snapshotService *service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotService: snapshotService,
	}
}

// Snapshots handles GET requests listing stored snapshots, newest first.
//
// Endpoint: GET /api/snapshot
// Response: 200 OK with array of SnapshotListing
// Error: 500 Internal Server Error if retrieval fails
func (h *SnapshotHandler) Snapshots(w http.ResponseWriter, _ *http.Request) {
	snapshots, err := h.snapshotService.GetSnapshots()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSnapshots.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshots)
}

// GetSnapshot handles GET requests for one full snapshot.
//
// Endpoint: GET /api/snapshot/{uuid}
// Response: 200 OK with Snapshot including holdings and rates
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 404 Not Found if the snapshot does not exist
// Error: 500 Internal Server Error if retrieval fails
func (h *SnapshotHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshotID := chi.URLParam(r, "uuid")

	snapshot, err := h.snapshotService.GetSnapshot(snapshotID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSnapshotNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSnapshotNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSnapshots.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}

// CreateSnapshot handles POST requests saving the current portfolio state as
// an immutable snapshot.
//
// Endpoint: POST /api/snapshot
// Response: 201 Created with the stored Snapshot
// Error: 500 Internal Server Error if creation fails
func (h *SnapshotHandler) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshotService.CreateSnapshot(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCreateSnapshot.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, snapshot)
}
