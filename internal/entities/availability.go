package entities

import "time"

type AvailabilityRequest struct {
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	VehicleType string    `json:"vehicle_type,omitempty"`
}

type AvailabilityResponse struct {
	Slots      []SlotResponse `json:"slots"`
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
}
