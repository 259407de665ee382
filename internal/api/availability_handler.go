package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"parkinglot/internal/db"
	"parkinglot/internal/entities"
	"parkinglot/internal/service"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type AvailabilityHandler struct {
	service *service.AvailabilityService
}

func NewAvailabilityHandler(svc *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: svc}
}

// CheckAvailability takes the window and optional vehicle type filter in the
// body; pagination and sorting come from query parameters.
func (h *AvailabilityHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req entities.AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	var vt *db.VehicleType
	if req.VehicleType != "" {
		parsed, ok := db.ParseVehicleType(req.VehicleType)
		if !ok {
			badRequest(w, "vehicle_type must be TWO_WHEELER or FOUR_WHEELER")
			return
		}
		vt = &parsed
	}

	q := r.URL.Query()
	page, err := queryInt(q.Get("page"), 0)
	if err != nil {
		badRequest(w, "page must be an integer")
		return
	}
	pageSize, err := queryInt(q.Get("page_size"), defaultPageSize)
	if err != nil {
		badRequest(w, "page_size must be an integer")
		return
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	sortBy := q.Get("sort_by")
	if sortBy == "" {
		sortBy = service.SortByID
	}

	result, err := h.service.FindAvailable(r.Context(), req.StartTime, req.EndTime, vt, page, pageSize, sortBy)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entities.AvailabilityResponse{
		Slots:      entities.ToSlotResponses(result.Slots),
		TotalCount: result.TotalCount,
		Page:       result.Page,
		PageSize:   result.PageSize,
	})
}

func queryInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
