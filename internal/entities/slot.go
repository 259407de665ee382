package entities

import (
	"time"

	"parkinglot/internal/db"
)

type CreateSlotRequest struct {
	FloorID     int64  `json:"floor_id"`
	SlotNumber  string `json:"slot_number"`
	VehicleType string `json:"vehicle_type"`
}

type UpdateSlotStatusRequest struct {
	Status string `json:"status"`
}

type SlotResponse struct {
	ID          int64     `json:"id"`
	FloorID     int64     `json:"floor_id"`
	SlotNumber  string    `json:"slot_number"`
	VehicleType string    `json:"vehicle_type"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToSlotResponse(s *db.Slot) SlotResponse {
	return SlotResponse{
		ID:          s.ID,
		FloorID:     s.FloorID,
		SlotNumber:  s.SlotNumber,
		VehicleType: string(s.VehicleType),
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt,
	}
}

func ToSlotResponses(slots []db.Slot) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for i := range slots {
		out = append(out, ToSlotResponse(&slots[i]))
	}
	return out
}
