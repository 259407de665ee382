package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"parkinglot/internal/db"
	"parkinglot/internal/entities"
	"parkinglot/internal/service"
)

type SlotHandler struct {
	service *service.SlotService
}

func NewSlotHandler(svc *service.SlotService) *SlotHandler {
	return &SlotHandler{service: svc}
}

func (h *SlotHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	vt, ok := db.ParseVehicleType(req.VehicleType)
	if !ok {
		badRequest(w, "vehicle_type must be TWO_WHEELER or FOUR_WHEELER")
		return
	}

	slot, err := h.service.Create(r.Context(), service.CreateSlotInput{
		FloorID:     req.FloorID,
		SlotNumber:  req.SlotNumber,
		VehicleType: vt,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entities.ToSlotResponse(slot))
}

func (h *SlotHandler) List(w http.ResponseWriter, r *http.Request) {
	var vt *db.VehicleType
	if raw := r.URL.Query().Get("vehicle_type"); raw != "" {
		parsed, ok := db.ParseVehicleType(raw)
		if !ok {
			badRequest(w, "vehicle_type must be TWO_WHEELER or FOUR_WHEELER")
			return
		}
		vt = &parsed
	}

	slots, err := h.service.List(r.Context(), vt)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.ToSlotResponses(slots))
}

func (h *SlotHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		badRequest(w, "slot id must be an integer")
		return
	}

	slot, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.ToSlotResponse(slot))
}

func (h *SlotHandler) ListByFloor(w http.ResponseWriter, r *http.Request) {
	floorID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		badRequest(w, "floor id must be an integer")
		return
	}

	slots, err := h.service.ListByFloor(r.Context(), floorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.ToSlotResponses(slots))
}

func (h *SlotHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		badRequest(w, "slot id must be an integer")
		return
	}

	var req entities.UpdateSlotStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	status, ok := db.ParseSlotStatus(req.Status)
	if !ok {
		badRequest(w, "status must be AVAILABLE, OCCUPIED or OUT_OF_SERVICE")
		return
	}

	slot, err := h.service.UpdateStatus(r.Context(), id, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.ToSlotResponse(slot))
}
