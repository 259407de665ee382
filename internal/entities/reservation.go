package entities

import (
	"time"

	"parkinglot/internal/db"
)

type CreateReservationRequest struct {
	SlotID        int64     `json:"slot_id"`
	VehicleNumber string    `json:"vehicle_number"`
	VehicleType   string    `json:"vehicle_type"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	ContactEmail  string    `json:"contact_email,omitempty"`
	ContactPhone  string    `json:"contact_phone,omitempty"`
}

type ReservationResponse struct {
	Code          string    `json:"code"`
	SlotID        int64     `json:"slot_id"`
	VehicleNumber string    `json:"vehicle_number"`
	VehicleType   string    `json:"vehicle_type"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	DurationHours int       `json:"duration_hours"`
	TotalCost     string    `json:"total_cost"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type ReservationsList struct {
	Total        int                   `json:"total"`
	Reservations []ReservationResponse `json:"reservations"`
}

func ToReservationResponse(res *db.Reservation) ReservationResponse {
	return ReservationResponse{
		Code:          res.Code,
		SlotID:        res.SlotID,
		VehicleNumber: res.VehicleNumber,
		VehicleType:   string(res.VehicleType),
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
		DurationHours: res.DurationHours,
		TotalCost:     res.TotalCost.StringFixed(2),
		Status:        string(res.Status),
		CreatedAt:     res.CreatedAt,
	}
}

func ToReservationsList(rs []db.Reservation) ReservationsList {
	out := ReservationsList{Total: len(rs), Reservations: make([]ReservationResponse, 0, len(rs))}
	for i := range rs {
		out.Reservations = append(out.Reservations, ToReservationResponse(&rs[i]))
	}
	return out
}
