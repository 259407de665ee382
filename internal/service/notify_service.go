package service

import (
	"fmt"

	"go.uber.org/zap"

	"parkinglot/internal/config"
	"parkinglot/internal/db"
	"parkinglot/internal/logger"
)

// Notifier receives reservation lifecycle events. Implementations must not
// block the booking path; delivery is fire-and-forget.
type Notifier interface {
	ReservationBooked(res *db.Reservation)
	ReservationCancelled(res *db.Reservation)
}

// NopNotifier drops all events. Used in tests and when no channel is
// configured.
type NopNotifier struct{}

func (NopNotifier) ReservationBooked(*db.Reservation)    {}
func (NopNotifier) ReservationCancelled(*db.Reservation) {}

// NotifyService sends confirmation email and SMS for reservations that
// carry contact details. Failures are logged and never surfaced to the
// caller; the reservation stands either way.
type NotifyService struct {
	cfg *config.Config
}

func NewNotifyService(cfg *config.Config) *NotifyService {
	return &NotifyService{cfg: cfg}
}

func (n *NotifyService) ReservationBooked(res *db.Reservation) {
	n.send(res, "confirmed")
}

func (n *NotifyService) ReservationCancelled(res *db.Reservation) {
	n.send(res, "cancelled")
}

const timeLayout = "02 Jan 2006 15:04 MST"

func (n *NotifyService) send(res *db.Reservation, event string) {
	if res.ContactEmail != "" {
		subject := fmt.Sprintf("Your parking reservation is %s - Code: %s", event, res.Code)
		body := fmt.Sprintf(
			"Your parking reservation has been %s.\n\n"+
				"Reservation code: %s\n"+
				"Vehicle: %s (%s)\n"+
				"From: %s\n"+
				"To: %s\n"+
				"Duration: %d hour(s)\n"+
				"Total cost: %s\n",
			event, res.Code, res.VehicleNumber, res.VehicleType,
			res.StartTime.Format(timeLayout), res.EndTime.Format(timeLayout),
			res.DurationHours, res.TotalCost.StringFixed(2),
		)
		go func(email string) {
			if err := sendEmail(n.cfg, email, subject, body); err != nil {
				logger.L().Warn("reservation email failed",
					zap.String("code", res.Code), zap.Error(err))
			}
		}(res.ContactEmail)
	}

	if res.ContactPhone != "" {
		msg := fmt.Sprintf("Parking reservation %s has been %s. Check-in: %s.",
			res.Code, event, res.StartTime.Format("02/01 15:04"))
		go func(phone string) {
			if err := sendSMS(n.cfg, phone, msg); err != nil {
				logger.L().Warn("reservation SMS failed",
					zap.String("code", res.Code), zap.Error(err))
			}
		}(res.ContactPhone)
	}
}
