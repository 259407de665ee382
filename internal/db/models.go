package db

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// VehicleType is the fixed classification a slot belongs to and a vehicle
// declares when booking. The set is closed; rates live in the pricing package.
type VehicleType string

const (
	TwoWheeler  VehicleType = "TWO_WHEELER"
	FourWheeler VehicleType = "FOUR_WHEELER"
)

// ParseVehicleType accepts the canonical form case-insensitively.
func ParseVehicleType(s string) (VehicleType, bool) {
	switch VehicleType(strings.ToUpper(s)) {
	case TwoWheeler:
		return TwoWheeler, true
	case FourWheeler:
		return FourWheeler, true
	}
	return "", false
}

// SlotStatus is informational only. Conflict detection is interval-based and
// never consults this flag.
type SlotStatus string

const (
	SlotAvailable    SlotStatus = "AVAILABLE"
	SlotOccupied     SlotStatus = "OCCUPIED"
	SlotOutOfService SlotStatus = "OUT_OF_SERVICE"
)

func ParseSlotStatus(s string) (SlotStatus, bool) {
	switch SlotStatus(strings.ToUpper(s)) {
	case SlotAvailable:
		return SlotAvailable, true
	case SlotOccupied:
		return SlotOccupied, true
	case SlotOutOfService:
		return SlotOutOfService, true
	}
	return "", false
}

type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "ACTIVE"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

func ParseReservationStatus(s string) (ReservationStatus, bool) {
	switch ReservationStatus(strings.ToUpper(s)) {
	case ReservationActive:
		return ReservationActive, true
	case ReservationCancelled:
		return ReservationCancelled, true
	}
	return "", false
}

type Floor struct {
	ID          int64
	FloorNumber int
	FloorName   string
	TotalSlots  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Slot struct {
	ID          int64
	FloorID     int64
	SlotNumber  string
	VehicleType VehicleType
	Status      SlotStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Matches reports whether the slot accepts the requested vehicle class.
func (s Slot) Matches(vt VehicleType) bool {
	return s.VehicleType == vt
}

// Reservation is a time-bounded claim on one slot. Start/end form a half-open
// interval [StartTime, EndTime). Rows are never deleted; cancellation flips
// Status to CANCELLED and nothing else.
type Reservation struct {
	ID            int64
	Code          string
	SlotID        int64
	VehicleNumber string
	VehicleType   VehicleType
	StartTime     time.Time
	EndTime       time.Time
	DurationHours int
	TotalCost     decimal.Decimal
	Status        ReservationStatus
	ContactEmail  string
	ContactPhone  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Admin struct {
	ID           int64
	Email        string
	PasswordHash string
}
