// Package pricing derives billable duration and cost from an interval and a
// per-class hourly rate table. Rates are data, not behavior on the class
// enum, so they can change without touching the classification.
package pricing

import (
	"github.com/shopspring/decimal"

	"parkinglot/internal/db"
	apperrors "parkinglot/internal/errors"
	"parkinglot/internal/interval"
)

// RateTable maps a vehicle class to its flat hourly rate. Currency-agnostic.
type RateTable map[db.VehicleType]decimal.Decimal

// DefaultRates returns the standard lot rates.
func DefaultRates() RateTable {
	return RateTable{
		db.TwoWheeler:  decimal.NewFromInt(20),
		db.FourWheeler: decimal.NewFromInt(30),
	}
}

// HourlyRate looks up the rate for a vehicle class.
func (t RateTable) HourlyRate(vt db.VehicleType) (decimal.Decimal, bool) {
	rate, ok := t[vt]
	return rate, ok
}

// Quote returns the billable whole hours (rounded up) and total cost for an
// interval and vehicle class.
func Quote(rates RateTable, vt db.VehicleType, iv interval.Interval) (int, decimal.Decimal, error) {
	rate, ok := rates.HourlyRate(vt)
	if !ok {
		return 0, decimal.Zero, apperrors.Newf(apperrors.KindPolicyViolation, "no hourly rate configured for vehicle type %s", vt)
	}
	hours := iv.DurationHours()
	return hours, rate.Mul(decimal.NewFromInt(int64(hours))), nil
}
