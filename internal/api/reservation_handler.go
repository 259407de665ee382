package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"parkinglot/internal/db"
	"parkinglot/internal/entities"
	"parkinglot/internal/service"
	"parkinglot/internal/utils"
)

type ReservationHandler struct {
	service *service.ReservationService
}

func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: svc}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	vt, ok := db.ParseVehicleType(req.VehicleType)
	if !ok {
		badRequest(w, "vehicle_type must be TWO_WHEELER or FOUR_WHEELER")
		return
	}
	if !utils.ValidVehicleNumber(req.VehicleNumber) {
		badRequest(w, "vehicle_number must match format XX00XX0000")
		return
	}

	res, err := h.service.Create(r.Context(), service.CreateReservationInput{
		SlotID:        req.SlotID,
		VehicleNumber: req.VehicleNumber,
		VehicleType:   vt,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entities.ToReservationResponse(res))
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	res, err := h.service.GetByCode(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.ToReservationResponse(res))
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	res, err := h.service.Cancel(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.ToReservationResponse(res))
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *db.ReservationStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		st, ok := db.ParseReservationStatus(raw)
		if !ok {
			badRequest(w, "status must be ACTIVE or CANCELLED")
			return
		}
		status = &st
	}

	list, err := h.service.List(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.ToReservationsList(list))
}

func (h *ReservationHandler) ListBySlot(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		badRequest(w, "slot id must be an integer")
		return
	}

	list, err := h.service.ListBySlot(r.Context(), slotID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.ToReservationsList(list))
}
