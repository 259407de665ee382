package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"parkinglot/internal/entities"
	"parkinglot/internal/service"
)

type FloorHandler struct {
	service *service.FloorService
}

func NewFloorHandler(svc *service.FloorService) *FloorHandler {
	return &FloorHandler{service: svc}
}

func (h *FloorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateFloorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	floor, err := h.service.Create(r.Context(), service.CreateFloorInput{
		FloorNumber: req.FloorNumber,
		FloorName:   req.FloorName,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entities.ToFloorResponse(floor))
}

func (h *FloorHandler) List(w http.ResponseWriter, r *http.Request) {
	floors, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.ToFloorResponses(floors))
}

func (h *FloorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		badRequest(w, "floor id must be an integer")
		return
	}

	detail, err := h.service.GetWithSlots(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.FloorDetailResponse{
		FloorResponse: entities.ToFloorResponse(&detail.Floor),
		Slots:         entities.ToSlotResponses(detail.Slots),
	})
}
