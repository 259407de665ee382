package entities

import (
	"time"

	"parkinglot/internal/db"
)

type CreateFloorRequest struct {
	FloorNumber int    `json:"floor_number"`
	FloorName   string `json:"floor_name"`
}

type FloorResponse struct {
	ID          int64     `json:"id"`
	FloorNumber int       `json:"floor_number"`
	FloorName   string    `json:"floor_name"`
	TotalSlots  int       `json:"total_slots"`
	CreatedAt   time.Time `json:"created_at"`
}

type FloorDetailResponse struct {
	FloorResponse
	Slots []SlotResponse `json:"slots"`
}

func ToFloorResponse(f *db.Floor) FloorResponse {
	return FloorResponse{
		ID:          f.ID,
		FloorNumber: f.FloorNumber,
		FloorName:   f.FloorName,
		TotalSlots:  f.TotalSlots,
		CreatedAt:   f.CreatedAt,
	}
}

func ToFloorResponses(floors []db.Floor) []FloorResponse {
	out := make([]FloorResponse, 0, len(floors))
	for i := range floors {
		out = append(out, ToFloorResponse(&floors[i]))
	}
	return out
}
